package ports

import (
	"context"
	"pictoroute/internal/domain"
)

// A single uploaded image.
type Image struct {
	Filename string
	Data     []byte
}

// Port: a boundary for extracting structured addresses from photographed tables.
type AddressExtractor interface {
	// Return the addresses found in the images, in reading order.
	ExtractAddresses(ctx context.Context, images []Image) ([]domain.Address, error)
}
