package services

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

func (s *Service) GetOrders(ctx context.Context, in *api.GetOrdersRequest) (*api.GetOrdersResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}

	orders, err := store.FindAs[models.Order](ctx, s.store, api.Orders, byUser(in.UserID))
	if err != nil {
		return nil, err
	}
	return &api.GetOrdersResponse{Orders: orders}, nil
}

// CreateOrder records the order with its computed total in pending state.
func (s *Service) CreateOrder(ctx context.Context, in *api.CreateOrderRequest) (*api.CreateResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, invalid("order has no items")
	}
	for _, it := range in.Items {
		if it.MedicineID == "" || it.Quantity <= 0 || it.Price < 0 {
			return nil, invalid("bad order line %+v", it)
		}
	}

	o := models.Order{
		ID:              s.newID(),
		UserID:          in.UserID,
		Items:           in.Items,
		ShippingAddress: in.ShippingAddress,
		Status:          models.OrderPending,
		CreatedAt:       s.timestamp(),
	}
	o.TotalAmount = o.Total()

	if err := s.store.Insert(ctx, api.Orders, o.ID, o); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.Orders, in.UserID))
	return &api.CreateResponse{ID: o.ID}, nil
}
