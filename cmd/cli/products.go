package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/apiclient"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List and inspect catalog products",
}

var (
	listBrand   string
	listType    string
	showVariant string
	asJSON      bool
)

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List product lines, one per title",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		list, err := c.Products(cmd.Context(), listBrand, listType)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if asJSON {
			return printJSON(list)
		}

		fmt.Printf("catalog v%d  brand=%s type=%s  %d lines\n", list.Version, list.Brand, list.Type, list.Total)
		for _, t := range list.Items {
			badge := ""
			if t.Discount > 0 {
				badge = fmt.Sprintf("  -%d%%", t.Discount)
			}
			fmt.Printf("%-12s %-28s %-10s %-14s %s%s\n",
				t.Product.ProductID, t.Product.Title, t.Brand, t.SizeLabel, t.PriceLabel, badge)
		}
		return nil
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show a product with its pack sizes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		page, err := c.Product(cmd.Context(), args[0], showVariant)
		if errors.Is(err, apiclient.ErrNotFound) {
			return fmt.Errorf("product %q not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("show product: %w", err)
		}
		if asJSON {
			return printJSON(page)
		}

		p := page.Product
		fmt.Printf("%s (%s)\n", p.Title, page.Brand)
		fmt.Printf("  id:     %s\n", p.ProductID)
		fmt.Printf("  size:   %s\n", page.Weight)
		if page.ListPriceLabel != "" {
			fmt.Printf("  price:  %s (was %s, %d%% off)\n", page.PriceLabel, page.ListPriceLabel, page.Discount)
		} else {
			fmt.Printf("  price:  %s\n", page.PriceLabel)
		}
		for _, v := range page.Variants {
			mark := " "
			if v.Selected {
				mark = "*"
			}
			fmt.Printf("  %s %-14s %s\n", mark, v.ProductID, v.Label)
		}
		return nil
	},
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the brand and product type filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		opts, err := c.Filters(cmd.Context())
		if err != nil {
			return fmt.Errorf("filters: %w", err)
		}
		for _, b := range opts.Brands {
			fmt.Printf("%s (%s)\n", b.Label, b.ID)
			for _, t := range opts.Types[b.ID] {
				fmt.Printf("  %s (%s)\n", t.Label, t.ID)
			}
		}
		return nil
	},
}

func init() {
	productsCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print raw JSON")
	productsListCmd.Flags().StringVar(&listBrand, "brand", "", "brand filter (all, Falcofix, Bluecoat)")
	productsListCmd.Flags().StringVar(&listType, "type", "", "product type filter within the brand")
	productsShowCmd.Flags().StringVar(&showVariant, "variant", "", "pack to select by product id")

	productsCmd.AddCommand(productsListCmd, productsShowCmd)
}
