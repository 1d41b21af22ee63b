package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"clothco/internal/usecase"
	basket "clothco/internal/usecase/basket_usecase"
)

type basketCmd struct {
	List   basketListCmd   `cmd:"" help:"Show basket lines, item count and total." default:"1"`
	Add    basketAddCmd    `cmd:"" help:"Add a product to the basket."`
	Remove basketRemoveCmd `cmd:"" help:"Remove a basket line."`
	Qty    basketQtyCmd    `cmd:"" help:"Set the quantity of a basket line."`
	Size   basketSizeCmd   `cmd:"" help:"Change the size of a basket line."`
	Clear  basketClearCmd  `cmd:"" help:"Empty the basket."`
}

type basketListCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *basketListCmd) Run(ctx context.Context, w io.Writer, uc *usecase.BasketUsecase) error {
	snap := uc.GetBasket(ctx)
	if c.JSON {
		return printJSON(w, snap)
	}
	return printSnapshot(w, snap)
}

type basketAddCmd struct {
	ProductID string `arg:"" help:"Product ID."`
	Size      string `arg:"" help:"Size."`
	Quantity  int64  `short:"n" default:"1" help:"Quantity to add."`
}

func (c *basketAddCmd) Run(ctx context.Context, w io.Writer, uc *usecase.BasketUsecase) error {
	snap, err := uc.AddItem(ctx, usecase.AddBasketItemInput{
		ProductID: c.ProductID,
		Size:      c.Size,
		Quantity:  c.Quantity,
	})
	if err != nil {
		return err
	}
	return printSnapshot(w, snap)
}

type basketRemoveCmd struct {
	ProductID string `arg:"" help:"Product ID."`
	Size      string `arg:"" help:"Size."`
}

func (c *basketRemoveCmd) Run(ctx context.Context, w io.Writer, uc *usecase.BasketUsecase) error {
	return printSnapshot(w, uc.RemoveItem(ctx, c.ProductID, c.Size))
}

type basketQtyCmd struct {
	ProductID string `arg:"" help:"Product ID."`
	Size      string `arg:"" help:"Size."`
	Quantity  int64  `arg:"" help:"New quantity (values below 1 become 1)."`
}

func (c *basketQtyCmd) Run(ctx context.Context, w io.Writer, uc *usecase.BasketUsecase) error {
	return printSnapshot(w, uc.UpdateQuantity(ctx, c.ProductID, c.Size, c.Quantity))
}

type basketSizeCmd struct {
	ProductID string `arg:"" help:"Product ID."`
	OldSize   string `arg:"" help:"Current size."`
	NewSize   string `arg:"" help:"New size."`
}

func (c *basketSizeCmd) Run(ctx context.Context, w io.Writer, uc *usecase.BasketUsecase) error {
	snap, err := uc.UpdateSize(ctx, c.ProductID, c.OldSize, c.NewSize)
	if err != nil {
		return err
	}
	return printSnapshot(w, snap)
}

type basketClearCmd struct{}

func (c *basketClearCmd) Run(ctx context.Context, w io.Writer, uc *usecase.BasketUsecase) error {
	return printSnapshot(w, uc.Clear(ctx))
}

func printSnapshot(w io.Writer, snap basket.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tQTY\tPRICE\tSUBTOTAL")
	for _, l := range snap.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", l.ID, l.Name, l.Size, l.Quantity, l.Price.StringFixed(2), l.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t\t%d\t\t%s\n", snap.ItemCount, snap.Total.StringFixed(2))
	return tw.Flush()
}
