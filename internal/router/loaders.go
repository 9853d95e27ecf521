package router

import (
	"context"

	"go.uber.org/zap"

	"slice/internal/api"
)

// MenuLister is the slice of the API client the menu route needs.
type MenuLister interface {
	Menu(ctx context.Context) ([]api.MenuItem, error)
}

// OrderGetter fetches a single order by id.
type OrderGetter interface {
	Order(ctx context.Context, id string) (api.Order, error)
}

// ReverseGeocoder resolves coordinates to an address.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (api.Address, error)
}

// MenuLoader binds the menu fetch to a route.
func MenuLoader(c MenuLister) LoaderFunc {
	return func(ctx context.Context) (any, error) {
		return c.Menu(ctx)
	}
}

// OrderLoader binds a single-order fetch to a route. A not-found failure
// propagates as-is so the errored screen can tell it apart from a generic
// fetch error.
func OrderLoader(c OrderGetter, id string) LoaderFunc {
	return func(ctx context.Context) (any, error) {
		return c.Order(ctx, id)
	}
}

// GeocodeLoader binds a reverse geocode to a route as a best-effort call:
// on failure it logs, yields an empty address and no error, so a missing
// address suggestion never blocks the checkout screen.
func GeocodeLoader(g ReverseGeocoder, lat, lon float64, log *zap.SugaredLogger) LoaderFunc {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return func(ctx context.Context) (any, error) {
		addr, err := g.ReverseGeocode(ctx, lat, lon)
		if err != nil {
			log.Warnw("geocode degraded to blank address", "error", err)
			return api.Address{}, nil
		}
		return addr, nil
	}
}
