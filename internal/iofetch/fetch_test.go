package iofetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/barcraft/bardb/pkg/catalog"
	"github.com/barcraft/bardb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.New()
	cfg.Fetch.Attempts = 3
	cfg.Fetch.DelaySec = 0
	cfg.Fetch.RequestsPerSec = 1000

	cat := &catalog.CatalogConfig{
		BaseURL: srv.URL,
		Letters: []string{"a", "l"},
	}
	return New(&cfg.Fetch, cat)
}

func TestDrinksByLetter(t *testing.T) {
	c := newClient(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search.php", r.URL.Path)
			assert.Equal(t, "a", r.URL.Query().Get("f"))
			w.Write([]byte(
				`{"drinks":[{"idDrink":"17222","strDrink":"A1"}]}`))
		}))

	got, err := c.DrinksByLetter(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A1", got[0].Str("strDrink"))
}

func TestNullResultIsEmpty(t *testing.T) {
	c := newClient(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"drinks":null}`))
		}))

	got, err := c.DrinksByName(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIngredientByName(t *testing.T) {
	c := newClient(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "tequila", r.URL.Query().Get("i"))
			w.Write([]byte(
				`{"ingredients":[{"idIngredient":"2","strIngredient":"Tequila"}]}`))
		}))

	got, err := c.IngredientByName(context.Background(), "tequila")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Str("idIngredient"))
}

func TestRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"drinks":[]}`))
		}))

	_, err := c.DrinksByLetter(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFailsAfterBudget(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))

	_, err := c.DrinksByLetter(context.Background(), "a")
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDecodeError(t *testing.T) {
	c := newClient(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))

	_, err := c.DrinksByLetter(context.Background(), "a")
	assert.Error(t, err)
}

func TestLetters(t *testing.T) {
	c := newClient(t, http.NotFoundHandler())
	assert.Equal(t, []string{"a", "l"}, c.Letters())
}
