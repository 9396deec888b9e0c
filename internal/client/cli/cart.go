package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

func (a *App) cartHook(ctx context.Context) *hooks.Cart {
	return mount(ctx, a, "cart", hooks.UseCart)
}

// cart [add <medicineId> [qty] | set <itemId> <qty> | rm <itemId>]
func (a *App) cart(ctx context.Context, args []string) error {
	c := a.cartHook(ctx)

	op, rest := sub(args)
	switch op {
	case "":
		items, err := snapshot(c.Items)
		if err != nil {
			return err
		}
		a.printCart(items)
		return nil

	case "add":
		if len(rest) < 1 {
			return usageError("cart add <medicineId> [quantity]")
		}
		qty := 1
		if len(rest) > 1 {
			n, err := parseQuantity(rest[1])
			if err != nil {
				return err
			}
			qty = n
		}
		o, err := c.AddItem(ctx, rest[0], qty)
		return a.report("Add to cart", o, err)

	case "set":
		if len(rest) < 2 {
			return usageError("cart set <itemId> <quantity>")
		}
		qty, err := parseQuantity(rest[1])
		if err != nil {
			return err
		}
		o, err := c.UpdateQuantity(ctx, rest[0], qty)
		return a.report("Update quantity", o, err)

	case "rm":
		if len(rest) < 1 {
			return usageError("cart rm <itemId>")
		}
		o, err := c.RemoveItem(ctx, rest[0])
		return a.report("Remove from cart", o, err)
	}
	return usageError("cart [add|set|rm]")
}

func (a *App) printCart(items []models.CartItem) {
	if len(items) == 0 {
		a.println("Cart is empty")
		return
	}
	var total float64
	a.table("ID\tMEDICINE\tQTY\tPRICE", func(w *tabwriter.Writer) {
		for _, it := range items {
			name, price := it.MedicineID, 0.0
			if it.Medicine != nil {
				name, price = it.Medicine.Name, it.Medicine.Price
			}
			total += price * float64(it.Quantity)
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n", it.ID, name, it.Quantity, price)
		}
	})
	a.printf("Total: %.2f\n", total)
}

// orders [place]. Placing an order turns the current cart into order lines
// and empties the cart once the order is accepted.
func (a *App) orders(ctx context.Context, args []string) error {
	o := mount(ctx, a, "orders", hooks.UseOrders)

	op, _ := sub(args)
	switch op {
	case "":
		list, err := snapshot(o.Items)
		if err != nil {
			return err
		}
		a.printOrders(list)
		return nil

	case "place":
		return a.placeOrder(ctx, o)
	}
	return usageError("orders [place]")
}

func (a *App) placeOrder(ctx context.Context, o *hooks.Orders) error {
	c := a.cartHook(ctx)
	items, err := snapshot(c.Items)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("Cart is empty")
		return nil
	}

	lines := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		line := models.OrderItem{MedicineID: it.MedicineID, Quantity: it.Quantity}
		if it.Medicine != nil {
			line.Price = it.Medicine.Price
		}
		lines = append(lines, line)
	}

	addr, err := a.askAddress()
	if err != nil {
		return err
	}

	outcome, err := o.PlaceOrder(ctx, hooks.NewOrder{Items: lines, ShippingAddress: addr})
	if err != nil || outcome.Skipped() {
		return a.report("Place order", outcome, err)
	}

	for _, it := range items {
		if _, err := c.RemoveItem(ctx, it.ID); err != nil {
			a.log.Warn(ctx, "clearing cart failed", "item", it.ID, "error", err)
		}
	}
	a.printf("Order placed, total %.2f\n", models.Order{Items: lines}.Total())
	return nil
}

func (a *App) askAddress() (models.Address, error) {
	var addr models.Address
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Street", &addr.Street},
		{"City", &addr.City},
		{"State", &addr.State},
		{"Zip code", &addr.ZipCode},
		{"Country", &addr.Country},
	}
	for _, f := range fields {
		v, err := a.ask(f.prompt)
		if err != nil {
			return models.Address{}, err
		}
		*f.dst = v
	}
	return addr, nil
}

func (a *App) printOrders(list []models.Order) {
	if len(list) == 0 {
		a.println("No orders")
		return
	}
	a.table("ID\tCREATED\tITEMS\tTOTAL\tSTATUS", func(w *tabwriter.Writer) {
		for _, o := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\n", o.ID, formatTime(o.CreatedAt), len(o.Items), o.TotalAmount, o.Status)
		}
	})
}
