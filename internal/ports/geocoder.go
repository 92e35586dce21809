package ports

import (
	"context"
	"pictoroute/internal/domain"
)

// Contract for resolving free-form address text to coordinates.
type Geocoder interface {
	// Return coordinates of the best match for the query.
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}

// Optional extension of Geocoder that understands structured addresses
// and may try several query variants.
type AddressGeocoder interface {
	Geocoder
	GeocodeAddress(ctx context.Context, addr domain.Address) (domain.Coordinates, error)
}
