package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avolkov/storefront/pkg/api"
)

// RunOrder places an order from product/quantity argument pairs
func (c *Cli) RunOrder(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args)%2 != 0 {
		return fmt.Errorf("usage: storefront order <product-id> <quantity> [...]")
	}

	var items []api.OrderItem
	for i := 0; i < len(args); i += 2 {
		qty, err := strconv.Atoi(args[i+1])
		if err != nil || qty < 1 {
			return fmt.Errorf("invalid quantity %q for product %s", args[i+1], args[i])
		}
		items = append(items, api.OrderItem{
			ProductID: args[i],
			Quantity:  qty,
		})
	}

	order, err := c.apiClient.CreateOrder(ctx, api.OrderRequest{Items: items})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Order %s placed\n", order.ID)
	fmt.Printf("Total: $%.2f\n", float64(order.TotalCents)/100)
	fmt.Printf("Status: %s\n", order.Status)

	return nil
}

// RunOrders lists the orders of the authenticated user
func (c *Cli) RunOrders(ctx context.Context) error {
	orders, err := c.apiClient.ListOrders(ctx)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}

	fmt.Println("=== Orders ===")
	fmt.Println()
	for _, o := range orders {
		fmt.Printf("%s  %s  $%.2f  %s\n",
			o.ID, o.CreatedAt.Format("2006-01-02 15:04"), float64(o.TotalCents)/100, o.Status)
		for _, item := range o.Items {
			fmt.Printf("    %s x%d\n", item.ProductID, item.Quantity)
		}
		fmt.Println()
	}

	return nil
}
