// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"

	"kalakraft_backend/internal/feature/imagescan/adapters/gemini"
	"kalakraft_backend/internal/feature/imagescan/adapters/vision"
	"kalakraft_backend/internal/feature/imagescan/transport/handler"
	"kalakraft_backend/internal/feature/imagescan/usecase"
)

// NewImagescanHandler creates a fully configured ImagescanHandler backed by
// Cloud Vision and Gemini, along with a cleanup function for the clients.
func NewImagescanHandler(ctx context.Context) (*handler.ImagescanHandler, func(), error) {
	detector, err := vision.NewVisionLogoDetector(ctx)
	if err != nil {
		return nil, nil, err
	}

	writer, err := gemini.NewGeminiWriter(ctx)
	if err != nil {
		_ = detector.Close()
		return nil, nil, err
	}

	uc := usecase.NewImagescanUsecase(detector, writer)
	cleanup := func() {
		_ = detector.Close()
	}
	return handler.NewImagescanHandler(uc), cleanup, nil
}
