// Package entity defines the domain entities for the catalog feature.
package entity

import "time"

// Product is one listing in the storefront catalog.
type Product struct {
	// ID is the unique identifier for the product.
	ID uint `gorm:"primaryKey"`

	// Name is the display name of the listing.
	Name string `gorm:"size:255;not null"`

	// Slug is the URL-safe identifier used by the storefront.
	Slug string `gorm:"uniqueIndex;size:255;not null"`

	// Description is the listing body text.
	Description string `gorm:"type:text"`

	// PriceCents is the price in the smallest currency unit.
	PriceCents int64 `gorm:"not null"`

	// ImageURL points at an uploaded product image (e.g. /uploads/<name>).
	// It is stored opaquely; the upload handler owns the file itself.
	ImageURL string `gorm:"size:512"`

	// Category groups listings on the storefront.
	Category string `gorm:"size:128;index"`

	// Stock is the units currently available.
	Stock int `gorm:"not null;default:0"`

	// IsActive controls whether the listing is visible.
	IsActive bool `gorm:"not null;default:true"`

	// SortKey orders listings within the catalog.
	SortKey int `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
