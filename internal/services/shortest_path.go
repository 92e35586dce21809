package services

import (
	"context"
	"fmt"
	"log"
	"pictoroute/internal/domain"
	"pictoroute/internal/platform/obs"
	"pictoroute/internal/routing"
)

type PlanOptions struct {
	// Home is pinned as the first and last stop. The zero value means domain.DefaultHome.
	Home *domain.Address

	// MaxStops bounds the number of addresses per request; 0 means unlimited.
	MaxStops int

	Routing routing.Options
}

// PlanShortestPath orders the addresses into a short round trip that starts
// and ends at the home base.
//
// Every address must already be geocoded. An address without coordinates
// fails the request with an error matching routing.ErrMissingCoordinate whose
// index refers to the input slice.
func PlanShortestPath(
	ctx context.Context,
	addresses []domain.Address,
	opts PlanOptions,
) (_ *domain.ShortestPath, err error) {
	defer obs.Time(ctx, "services.PlanShortestPath")(&err)

	if opts.MaxStops > 0 && len(addresses) > opts.MaxStops {
		return nil, fmt.Errorf("plan shortest path: %w: got %d, max %d",
			ErrTooManyStops, len(addresses), opts.MaxStops)
	}

	home := domain.DefaultHome
	if opts.Home != nil {
		home = *opts.Home
	}
	if home.Coordinates == nil {
		return nil, fmt.Errorf("plan shortest path: home %q has no coordinates", home.Text())
	}

	for i, a := range addresses {
		if a.Coordinates == nil {
			return nil, fmt.Errorf("plan shortest path: address %q: %w",
				a.Text(), &routing.MissingCoordinateError{Index: i})
		}
	}

	waypoints := make([]routing.Waypoint[domain.Address], 0, len(addresses)+2)
	waypoints = append(waypoints, routing.Waypoint[domain.Address]{Coords: home.Coordinates, Payload: home})
	for _, a := range addresses {
		waypoints = append(waypoints, routing.Waypoint[domain.Address]{Coords: a.Coordinates, Payload: a})
	}
	waypoints = append(waypoints, routing.Waypoint[domain.Address]{Coords: home.Coordinates, Payload: home})

	res, err := routing.Optimize(waypoints, 0, len(waypoints)-1, domain.Address.Text, opts.Routing)
	if err != nil {
		return nil, fmt.Errorf("plan shortest path: %w", err)
	}

	log.Printf("req_id=%s route planned stops=%d length_km=%.3f passes=%d moves=%d truncated=%t",
		obs.RequestID(ctx), len(addresses), res.Length, res.Stats.Passes, res.Stats.Moves, res.Stats.Truncated)

	return &domain.ShortestPath{
		Length:    res.Length,
		Links:     res.Links,
		Addresses: res.Waypoints,
	}, nil
}
