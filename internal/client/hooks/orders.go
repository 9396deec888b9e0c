package hooks

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

type NewOrder struct {
	Items           []models.OrderItem
	ShippingAddress models.Address
}

type Orders struct {
	base
	Items *live.Query[[]models.Order]
}

func UseOrders(ctx context.Context, env Env) *Orders {
	o := &Orders{base: newBase(ctx, env, "orders")}
	o.Items = userRead(ctx, &o.base, api.Orders, func(ctx context.Context, userID string) ([]models.Order, error) {
		resp, err := env.Backend.GetOrders(ctx, &api.GetOrdersRequest{UserID: userID})
		if err != nil {
			return nil, err
		}
		return resp.Orders, nil
	})
	return o
}

func (o *Orders) PlaceOrder(ctx context.Context, in NewOrder) (Outcome, error) {
	if out, ok := o.gate(); !ok {
		return out, nil
	}
	for _, it := range in.Items {
		if it.MedicineID == "" {
			return OutcomeMissingID, nil
		}
	}
	_, err := o.env.Backend.CreateOrder(ctx, &api.CreateOrderRequest{
		UserID:          o.userID(),
		Items:           in.Items,
		ShippingAddress: in.ShippingAddress,
	})
	return called(err)
}

func (o *Orders) Close() error {
	return errors.Join(o.release(), o.Items.Close())
}
