// Package products assembles composite product records from a primary product
// store and a dependent media store. Media lookups are isolated per product:
// one product's media outage never hides the other products' data.
package products

import (
	"context"
	"log/slog"

	"github.com/helioslabs/prodinfo/pkg/toolerr"
	"github.com/helioslabs/prodinfo/pkg/tools/toolbox"
	"golang.org/x/sync/errgroup"
)

// Media type discriminators as stored in the media table.
const (
	mediaImage = 0
	mediaVideo = 1
)

// defaultMediaConcurrency bounds the per-product media fan-out.
const defaultMediaConcurrency = 4

// ProductRow is one row from the product store. Description and Price are nil
// when the store holds no value.
type ProductRow struct {
	ID          string
	Name        string
	Description *string
	Price       *float64
}

// MediaRow is one row from the media store. Type 0 is an image, 1 a video;
// any other value is dropped.
type MediaRow struct {
	Path string `json:"path"`
	Type int    `json:"type"`
}

// Product is the composite record returned to callers. Price is either the
// stored number or the string sentinel "N/A"; Images and Videos are always
// non-nil so empty lists serialize as [].
type Product struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       any      `json:"price"`
	Images      []string `json:"images"`
	Videos      []string `json:"videos"`
}

// ProductStore queries the primary product table. nameFilter, when non-empty,
// restricts results to names containing it case-insensitively.
type ProductStore interface {
	Products(ctx context.Context, userID, nameFilter string) ([]ProductRow, error)
}

// MediaStore queries media rows by product id.
type MediaStore interface {
	Media(ctx context.Context, productID string) ([]MediaRow, error)
}

// Aggregator joins product rows with their media rows.
type Aggregator struct {
	products ProductStore
	media    MediaStore
	log      *slog.Logger
	limit    int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger used for per-product media warnings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) { a.log = l }
}

// WithMediaConcurrency bounds how many media lookups run at once.
func WithMediaConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.limit = n
		}
	}
}

// New creates an Aggregator over the given stores.
func New(products ProductStore, media MediaStore, opts ...Option) *Aggregator {
	a := &Aggregator{
		products: products,
		media:    media,
		log:      slog.Default(),
		limit:    defaultMediaConcurrency,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// List returns the user's products merged with their media, preserving the
// store's row order. An empty result is not an error. A primary-query fault
// fails the whole call; a media fault only empties that product's lists.
func (a *Aggregator) List(ctx context.Context, userID, nameFilter string) ([]Product, error) {
	rows, err := a.products.Products(ctx, userID, nameFilter)
	if err != nil {
		return nil, toolerr.Wrapf(toolerr.KindStoreUnavailable, err, "Error retrieving product info: %v", err)
	}

	result := make([]Product, len(rows))

	var g errgroup.Group
	g.SetLimit(a.limit)

	for i, row := range rows {
		g.Go(func() error {
			result[i] = a.assemble(ctx, row)
			return nil
		})
	}

	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	return result, nil
}

// assemble merges one product row with its media partitions, applying the
// "No description" and "N/A" defaults for absent fields.
func (a *Aggregator) assemble(ctx context.Context, row ProductRow) Product {
	p := Product{
		Name:        row.Name,
		Description: "No description",
		Price:       "N/A",
		Images:      []string{},
		Videos:      []string{},
	}

	if row.Description != nil {
		p.Description = *row.Description
	}

	if row.Price != nil {
		p.Price = *row.Price
	}

	media, err := a.media.Media(ctx, row.ID)
	if err != nil {
		a.log.Warn("media lookup failed, returning product without media",
			"product_id", row.ID,
			"err", err,
		)

		return p
	}

	for _, m := range media {
		switch m.Type {
		case mediaImage:
			p.Images = append(p.Images, m.Path)
		case mediaVideo:
			p.Videos = append(p.Videos, m.Path)
		}
	}

	return p
}

// Tool returns the get_product_info tool backed by this aggregator.
func (a *Aggregator) Tool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "get_product_info",
		Description: "Fetch a user's products with their images and videos, optionally filtered by name.",
		Params: []toolbox.Param{
			{Name: "user_id", Type: toolbox.TypeString, Description: "Owner of the products", Required: true},
			{Name: "name", Type: toolbox.TypeString, Description: "Case-insensitive substring filter on the product name"},
		},
		Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
			list, err := a.List(ctx, args.String("user_id"), args.String("name"))
			if err != nil {
				return nil, err
			}

			return list, nil
		},
	}
}
