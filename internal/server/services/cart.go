package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

func cartOwner(c *models.CartItem) string { return c.UserID }

// GetCartItems returns the user's cart lines with their medicine attached.
// Lines whose medicine left the catalog keep a nil Medicine.
func (s *Service) GetCartItems(ctx context.Context, in *api.GetCartItemsRequest) (*api.GetCartItemsResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}

	items, err := store.FindAs[models.CartItem](ctx, s.store, api.CartItems, byUser(in.UserID))
	if err != nil {
		return nil, err
	}

	for i := range items {
		m, err := store.GetAs[models.Medicine](ctx, s.store, api.Medicines, items[i].MedicineID)
		switch {
		case err == nil:
			items[i].Medicine = m
		case errors.Is(err, store.ErrNotFound):
		default:
			return nil, err
		}
	}
	return &api.GetCartItemsResponse{Items: items}, nil
}

// AddToCart adds a line, or grows the quantity of the line already holding
// the medicine.
func (s *Service) AddToCart(ctx context.Context, in *api.AddToCartRequest) (*api.CreateResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.MedicineID == "" {
		return nil, invalid("medicineId is required")
	}
	if in.Quantity <= 0 {
		return nil, invalid("quantity must be positive")
	}
	if _, err := s.store.Get(ctx, api.Medicines, in.MedicineID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalid("unknown medicine %q", in.MedicineID)
		}
		return nil, err
	}

	existing, err := store.FindAs[models.CartItem](ctx, s.store, api.CartItems,
		store.Filter{"userId": in.UserID, "medicineId": in.MedicineID})
	if err != nil {
		return nil, err
	}

	topic := api.UserTopic(api.CartItems, in.UserID)

	if len(existing) > 0 {
		line := existing[0]
		err := s.store.Patch(ctx, api.CartItems, line.ID, models.Patch{"quantity": line.Quantity + in.Quantity})
		if err != nil {
			return nil, err
		}
		s.publish(ctx, topic)
		return &api.CreateResponse{ID: line.ID}, nil
	}

	item := models.CartItem{
		ID:         s.newID(),
		UserID:     in.UserID,
		MedicineID: in.MedicineID,
		Quantity:   in.Quantity,
		AddedAt:    s.timestamp(),
	}
	if err := s.store.Insert(ctx, api.CartItems, item.ID, item); err != nil {
		return nil, err
	}
	s.publish(ctx, topic)
	return &api.CreateResponse{ID: item.ID}, nil
}

func (s *Service) UpdateCartItem(ctx context.Context, in *api.UpdateCartItemRequest) (*api.Empty, error) {
	if in.Quantity <= 0 {
		return nil, invalid("quantity must be positive")
	}
	item, err := owned(ctx, s, api.CartItems, in.CartItemID, cartOwner)
	if err != nil {
		return nil, err
	}

	if err := s.store.Patch(ctx, api.CartItems, item.ID, models.Patch{"quantity": in.Quantity}); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.CartItems, item.UserID))
	return &api.Empty{}, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, in *api.RemoveFromCartRequest) (*api.Empty, error) {
	item, err := owned(ctx, s, api.CartItems, in.CartItemID, cartOwner)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, api.CartItems, item.ID); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.CartItems, item.UserID))
	return &api.Empty{}, nil
}
