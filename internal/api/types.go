// Package api defines the request/response types shared by all HTTP handlers.
package api

// ErrorResponse is the generic error payload returned to clients.
// It never carries internal detail; full errors are logged server-side.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a generic success payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse is returned by endpoints whose only result is "it worked".
type SuccessResponse struct {
	Success bool `json:"success"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse carries the public fields of a user. The password hash is
// never part of this type.
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// ConfirmPasswordChangeRequest is the body for the OTP-gated password change.
type ConfirmPasswordChangeRequest struct {
	OTP             string `json:"otp" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// UploadResponse is returned after a successful file upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// ProductResponse is the public representation of a catalog product.
type ProductResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
}

// ProductRequest is the admin create/update body for a catalog product.
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"min=0"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Stock       int    `json:"stock" binding:"min=0"`
	SortKey     int    `json:"sort_key"`
	IsActive    *bool  `json:"is_active"`
}

// DetectedLogoResponse is one logo/brand hit found in a product photo.
type DetectedLogoResponse struct {
	Name       string  `json:"name"`
	Confidence float32 `json:"confidence"`
}

// DescribeProductRequest asks for a generated listing description.
type DescribeProductRequest struct {
	ProductName string `json:"product_name" binding:"required"`
}

// DescribeProductResponse carries the generated listing description.
type DescribeProductResponse struct {
	ProductName string `json:"product_name"`
	Description string `json:"description"`
}
