package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"clothco/internal/infra/seed"
	"clothco/internal/usecase"
)

type catalogCmd struct {
	List catalogListCmd `cmd:"" help:"List products." default:"1"`
	Seed catalogSeedCmd `cmd:"" help:"Insert the built-in catalog when the product table is empty."`
}

type catalogListCmd struct {
	Query    string `short:"q" help:"Search name, description and category."`
	Category string `help:"Filter by category."`
	Sort     string `default:"featured" enum:"featured,price-asc,price-desc,name-asc,name-desc" help:"Sort order."`
	JSON     bool   `help:"Print as JSON."`
}

func (c *catalogListCmd) Run(ctx context.Context, w io.Writer, uc *usecase.ProductUsecase) error {
	out, err := uc.ListProducts(ctx, usecase.ListProductsInput{
		Q:        c.Query,
		Category: c.Category,
		Sort:     c.Sort,
	})
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(w, out)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSIZES")
	for _, p := range out.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Sizes)
	}
	return tw.Flush()
}

type catalogSeedCmd struct{}

func (c *catalogSeedCmd) Run(ctx context.Context, w io.Writer, uc *usecase.ProductUsecase) error {
	products, err := seed.Products()
	if err != nil {
		return err
	}
	n, err := uc.SeedIfEmpty(ctx, products)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "seeded %d products\n", n)
	return err
}
