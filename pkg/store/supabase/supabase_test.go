package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresURLAndKey(t *testing.T) {
	_, err := New("", "key")
	assert.Error(t, err)

	_, err = New("https://proj.supabase.co", "")
	assert.Error(t, err)

	s, err := New("https://proj.supabase.co", "service-key")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

// postgrestServer records the last request and replies with the given body.
func postgrestServer(t *testing.T, body string) (*httptest.Server, *http.Request) {
	t.Helper()

	var got http.Request

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = *r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	return ts, &got
}

func TestProductsQuery(t *testing.T) {
	ts, got := postgrestServer(t, `[
		{"id": 7, "name": "Lamp", "description": "A lamp", "price": 19.99, "user_id": "u1"},
		{"id": 8, "name": "Mystery lamp", "description": null, "price": null, "user_id": "u1"}
	]`)

	s, err := New(ts.URL, "service-key")
	require.NoError(t, err)

	rows, err := s.Products(context.Background(), "u1", "lamp")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "/rest/v1/products", got.URL.Path)
	assert.Equal(t, "service-key", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer service-key", got.Header.Get("Authorization"))
	assert.Equal(t, "eq.u1", got.URL.Query().Get("user_id"))
	assert.Equal(t, "ilike.%lamp%", got.URL.Query().Get("name"))

	assert.Equal(t, "7", rows[0].ID)
	assert.Equal(t, "Lamp", rows[0].Name)
	require.NotNil(t, rows[0].Description)
	assert.Equal(t, "A lamp", *rows[0].Description)
	require.NotNil(t, rows[0].Price)
	assert.Equal(t, 19.99, *rows[0].Price)

	assert.Equal(t, "8", rows[1].ID)
	assert.Nil(t, rows[1].Description)
	assert.Nil(t, rows[1].Price)
}

func TestProductsWithoutFilterOmitsIlike(t *testing.T) {
	ts, got := postgrestServer(t, `[]`)

	s, err := New(ts.URL, "service-key")
	require.NoError(t, err)

	rows, err := s.Products(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.False(t, got.URL.Query().Has("name"))
}

func TestProductsUUIDIDs(t *testing.T) {
	ts, _ := postgrestServer(t, `[{"id": "6f1c2b34-aaaa-bbbb-cccc-0123456789ab", "name": "Lamp"}]`)

	s, err := New(ts.URL, "service-key")
	require.NoError(t, err)

	rows, err := s.Products(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "6f1c2b34-aaaa-bbbb-cccc-0123456789ab", rows[0].ID)
}

func TestMediaQuery(t *testing.T) {
	ts, got := postgrestServer(t, `[
		{"path": "img/a.png", "type": 0},
		{"path": "vid/b.mp4", "type": 1}
	]`)

	s, err := New(ts.URL, "service-key")
	require.NoError(t, err)

	rows, err := s.Media(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "/rest/v1/product_media", got.URL.Path)
	assert.Equal(t, "eq.7", got.URL.Query().Get("product_id"))

	assert.Equal(t, "img/a.png", rows[0].Path)
	assert.Equal(t, 0, rows[0].Type)
	assert.Equal(t, "vid/b.mp4", rows[1].Path)
	assert.Equal(t, 1, rows[1].Type)
}

func TestStoreFaultSurfacesError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(ts.Close)

	s, err := New(ts.URL, "bad-key")
	require.NoError(t, err)

	_, err = s.Products(context.Background(), "u1", "")
	assert.Error(t, err)

	_, err = s.Media(context.Background(), "7")
	assert.Error(t, err)
}
