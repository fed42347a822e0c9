// Package supabase implements the product and media stores on top of a
// Supabase project's PostgREST endpoint. The API key is an opaque handle
// injected at construction; it is never read from inside this package.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/helioslabs/prodinfo/pkg/products"
	"github.com/supabase-community/postgrest-go"
)

const (
	productsTable = "products"
	mediaTable    = "product_media"
)

// Store talks to the Supabase REST API. It implements both
// products.ProductStore and products.MediaStore.
type Store struct {
	client *postgrest.Client
}

// New creates a Store for the given project URL and API key.
func New(rawURL, key string) (*Store, error) {
	if rawURL == "" || key == "" {
		return nil, fmt.Errorf("supabase: url and key are required")
	}

	headers := map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	}

	client := postgrest.NewClient(strings.TrimRight(rawURL, "/")+"/rest/v1", "public", headers)
	if client.ClientError != nil {
		return nil, fmt.Errorf("supabase: new client: %w", client.ClientError)
	}

	return &Store{client: client}, nil
}

// productRow decodes a PostgREST product row. The id column may be numeric or
// a uuid depending on the schema, so it is read as a raw JSON token.
type productRow struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       *float64        `json:"price"`
}

// Products queries the products table for rows owned by userID. A non-empty
// nameFilter adds a case-insensitive substring match on the name column.
func (s *Store) Products(ctx context.Context, userID, nameFilter string) ([]products.ProductRow, error) {
	q := s.client.From(productsTable).Select("*", "", false).Eq("user_id", userID)
	if nameFilter != "" {
		q = q.Ilike("name", "%"+nameFilter+"%")
	}

	data, _, err := q.ExecuteWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("supabase: query products: %w", err)
	}

	var rows []productRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("supabase: decode products: %w", err)
	}

	out := make([]products.ProductRow, len(rows))
	for i, r := range rows {
		out[i] = products.ProductRow{
			ID:          rawID(r.ID),
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
		}
	}

	return out, nil
}

// Media queries the media table for rows belonging to productID.
func (s *Store) Media(ctx context.Context, productID string) ([]products.MediaRow, error) {
	data, _, err := s.client.From(mediaTable).
		Select("path,type", "", false).
		Eq("product_id", productID).
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("supabase: query media: %w", err)
	}

	var rows []products.MediaRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("supabase: decode media: %w", err)
	}

	return rows, nil
}

// rawID renders an id column value as the string PostgREST equality filters
// expect: numeric ids keep their digits, string ids lose their quotes.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return strings.TrimSpace(string(raw))
}
