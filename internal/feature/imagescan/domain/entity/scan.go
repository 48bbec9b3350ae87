// Package entity defines the domain entities for the imagescan feature.
package entity

// DetectedLogo is one brand mark found in a product photo. Artisan listings
// must not carry third-party branding, so hits are surfaced to the admin.
type DetectedLogo struct {
	// Name is the brand or logo description returned by the provider.
	Name string

	// Confidence is the provider's detection score in [0, 1].
	Confidence float32
}

// ListingDescription is a generated draft for a product listing.
type ListingDescription struct {
	ProductName string
	Description string
}
