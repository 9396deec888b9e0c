package hooks

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

// Cart is the shopping cart of the current user. Without a resolved user
// the cart is disabled like every other entity; there is no stand-in user.
type Cart struct {
	base
	Items *live.Query[[]models.CartItem]
}

func UseCart(ctx context.Context, env Env) *Cart {
	c := &Cart{base: newBase(ctx, env, "cart")}
	c.Items = userRead(ctx, &c.base, api.CartItems, func(ctx context.Context, userID string) ([]models.CartItem, error) {
		resp, err := env.Backend.GetCartItems(ctx, &api.GetCartItemsRequest{UserID: userID})
		if err != nil {
			return nil, err
		}
		return resp.Items, nil
	})
	return c
}

func (c *Cart) UserLoaded() bool {
	return c.userID() != ""
}

func (c *Cart) AddItem(ctx context.Context, medicineID string, quantity int) (Outcome, error) {
	if o, ok := c.gate(); !ok {
		return o, nil
	}
	if medicineID == "" {
		return OutcomeMissingID, nil
	}
	_, err := c.env.Backend.AddToCart(ctx, &api.AddToCartRequest{UserID: c.userID(), MedicineID: medicineID, Quantity: quantity})
	return called(err)
}

func (c *Cart) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) (Outcome, error) {
	if o, ok := c.gate(); !ok {
		return o, nil
	}
	if cartItemID == "" {
		return OutcomeMissingID, nil
	}
	_, err := c.env.Backend.UpdateCartItem(ctx, &api.UpdateCartItemRequest{CartItemID: cartItemID, Quantity: quantity})
	return called(err)
}

func (c *Cart) RemoveItem(ctx context.Context, cartItemID string) (Outcome, error) {
	if o, ok := c.gate(); !ok {
		return o, nil
	}
	if cartItemID == "" {
		return OutcomeMissingID, nil
	}
	_, err := c.env.Backend.RemoveFromCart(ctx, &api.RemoveFromCartRequest{CartItemID: cartItemID})
	return called(err)
}

func (c *Cart) Close() error {
	return errors.Join(c.release(), c.Items.Close())
}
