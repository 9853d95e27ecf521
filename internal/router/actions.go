package router

import (
	"context"

	"go.uber.org/zap"

	"slice/internal/api"
	"slice/internal/store"
)

// OrderService is the mutation surface of the API client.
type OrderService interface {
	CreateOrder(ctx context.Context, payload api.OrderPayload) (api.Order, error)
	UpdateOrder(ctx context.Context, id string, patch api.OrderPatch) (api.Order, error)
}

// Actions bundles the action-equivalents: the submission handlers bound to
// route forms. Each validates locally first, then calls the remote client.
type Actions struct {
	Orders OrderService
	Store  *store.Store
	log    *zap.SugaredLogger
}

// NewActions wires the mutation handlers to the client and the store.
func NewActions(orders OrderService, st *store.Store, log *zap.SugaredLogger) *Actions {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Actions{Orders: orders, Store: st, log: log}
}

// SubmitOrder is the new-order form's action. Invalid input short-circuits
// before any network call and comes back as ValidationErrors; a backend
// failure comes back as a ServiceError and the caller stays on the form.
// On success the cart is cleared (the single ClearCart call of a session)
// and the created order is returned for the redirect.
func (a *Actions) SubmitOrder(ctx context.Context, form OrderForm) (api.Order, error) {
	if verrs := form.Validate(); verrs != nil {
		a.log.Debugw("order form rejected", "fields", verrs.Error())
		return api.Order{}, verrs
	}

	items := a.Store.Items()
	if len(items) == 0 {
		return api.Order{}, ValidationErrors{"cart": "Your cart is empty. Add some pizzas first."}
	}

	cart := make([]api.OrderItem, len(items))
	for i, li := range items {
		cart[i] = api.OrderItem{
			PizzaID:    li.ID,
			Name:       li.Name,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			TotalPrice: li.Subtotal(),
		}
	}

	order, err := a.Orders.CreateOrder(ctx, api.OrderPayload{
		CustomerName: form.Customer,
		Phone:        form.Phone,
		Address:      form.Address,
		Cart:         cart,
		Priority:     form.Priority,
		Position:     form.Position,
	})
	if err != nil {
		return api.Order{}, err
	}

	a.Store.ClearCart()
	a.log.Infow("order submitted", "id", order.ID, "items", len(cart))
	return order, nil
}

// MakePriority is the order screen's action: PATCH priority=true. Failure
// policy, kept from the source design: the error is logged and swallowed,
// the caller receives nil and the priority toggle visibly stays unchanged
// because the backend never confirmed.
func (a *Actions) MakePriority(ctx context.Context, id string) *api.Order {
	prio := true
	order, err := a.Orders.UpdateOrder(ctx, id, api.OrderPatch{Priority: &prio})
	if err != nil {
		a.log.Warnw("priority update swallowed", "id", id, "error", err)
		return nil
	}
	return &order
}
