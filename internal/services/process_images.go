package services

import (
	"context"
	"fmt"
	"pictoroute/internal/domain"
	"pictoroute/internal/platform/obs"
	"pictoroute/internal/ports"
)

// ProcessImages extracts the addresses shown in the images and geocodes each
// of them. Addresses that cannot be geocoded are returned with nil coordinates
// so the user can correct them and call RefetchCoordinates.
func ProcessImages(
	ctx context.Context,
	images []ports.Image,
	extractor ports.AddressExtractor,
	geocoder ports.Geocoder,
	concurrency int,
) (_ []domain.Address, err error) {
	defer obs.Time(ctx, "services.ProcessImages")(&err)

	if len(images) == 0 {
		return nil, fmt.Errorf("process images: %w", ErrNoImages)
	}

	addresses, err := extractor.ExtractAddresses(ctx, images)
	if err != nil {
		return nil, fmt.Errorf("process images: %w: %w", ErrExtractionFailed, err)
	}

	for i := range addresses {
		addresses[i].Coordinates = nil
		addresses[i].ToUpdate = false
	}

	if err := ResolveCoordinates(ctx, addresses, geocoder, concurrency, nil); err != nil {
		return nil, fmt.Errorf("process images: %w", err)
	}

	return addresses, nil
}
