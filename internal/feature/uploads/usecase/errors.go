package usecase

import "errors"

var (
	// ErrEmptyFile is returned when the uploaded file carries no bytes.
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrFileTooLarge is returned when the upload exceeds MaxUploadSize.
	ErrFileTooLarge = errors.New("uploaded file is too large")
)
