package services

import (
	"context"
	"fmt"
	"pictoroute/internal/domain"
	"pictoroute/internal/platform/obs"
	"pictoroute/internal/ports"
)

// RefetchCoordinates geocodes the addresses that have no coordinates yet or
// were edited (ToUpdate). All returned addresses have ToUpdate cleared.
// The input slice is not modified.
func RefetchCoordinates(
	ctx context.Context,
	addresses []domain.Address,
	geocoder ports.Geocoder,
	concurrency int,
) (_ []domain.Address, err error) {
	defer obs.Time(ctx, "services.RefetchCoordinates")(&err)

	out := make([]domain.Address, len(addresses))
	copy(out, addresses)

	need := func(i int) bool {
		return out[i].Coordinates == nil || out[i].ToUpdate
	}

	if err := ResolveCoordinates(ctx, out, geocoder, concurrency, need); err != nil {
		return nil, fmt.Errorf("refetch coordinates: %w", err)
	}

	for i := range out {
		out[i].ToUpdate = false
	}
	return out, nil
}
