package cli

import (
	"context"
	"fmt"
)

// RunProducts lists catalog products, optionally filtered by category
func (c *Cli) RunProducts(ctx context.Context, args []string) error {
	categoryID := ""
	if len(args) > 0 {
		categoryID = args[0]
	}

	products, err := c.apiClient.ListProducts(ctx, categoryID)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}

	fmt.Println("=== Products ===")
	fmt.Println()
	for _, p := range products {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}
		fmt.Printf("%s  %s\n", p.ID, p.Name)
		fmt.Printf("    %s\n", p.Description)
		fmt.Printf("    $%.2f (%s)\n", float64(p.PriceCents)/100, stock)
		fmt.Println()
	}

	return nil
}

// RunCategories lists catalog categories
func (c *Cli) RunCategories(ctx context.Context) error {
	categories, err := c.apiClient.ListCategories(ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	fmt.Println("=== Categories ===")
	fmt.Println()
	for _, cat := range categories {
		fmt.Printf("%s  %s (%s)\n", cat.ID, cat.Name, cat.Slug)
	}

	return nil
}
