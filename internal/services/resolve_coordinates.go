package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"pictoroute/internal/domain"
	"pictoroute/internal/platform/obs"
	"pictoroute/internal/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultGeocodeConcurrency bounds in-flight geocoding lookups when the
// caller passes a non-positive limit.
const DefaultGeocodeConcurrency = 4

// ResolveCoordinates geocodes addresses[i] for every i where need(i) is true,
// writing the result into the slice in place. At most concurrency lookups run
// at once.
//
// A lookup that fails is logged and leaves that address without coordinates;
// only context cancellation aborts the whole batch.
func ResolveCoordinates(
	ctx context.Context,
	addresses []domain.Address,
	geocoder ports.Geocoder,
	concurrency int,
	need func(i int) bool,
) (err error) {
	defer obs.Time(ctx, "services.ResolveCoordinates")(&err)

	if concurrency <= 0 {
		concurrency = DefaultGeocodeConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	resolved := 0
	for i := range addresses {
		if need != nil && !need(i) {
			continue
		}
		if gctx.Err() != nil {
			break
		}

		resolved++
		g.Go(func() error {
			c, err := geocodeAddress(gctx, geocoder, addresses[i])
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				log.Printf("req_id=%s geocode failed index=%d address=%q err=%v",
					obs.RequestID(ctx), i, addresses[i].Text(), err)
				addresses[i].Coordinates = nil
				return nil
			}
			addresses[i].Coordinates = &c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("resolve coordinates: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("resolve coordinates: %w", err)
	}

	log.Printf("req_id=%s geocoded addresses=%d total=%d", obs.RequestID(ctx), resolved, len(addresses))
	return nil
}

// Prefer the structured lookup with its fallback queries when supported.
func geocodeAddress(ctx context.Context, geocoder ports.Geocoder, addr domain.Address) (domain.Coordinates, error) {
	if ag, ok := geocoder.(ports.AddressGeocoder); ok {
		return ag.GeocodeAddress(ctx, addr)
	}
	return geocoder.Geocode(ctx, addr.Text())
}
