package ioserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barcraft/bardb/internal/iostage"
	"github.com/barcraft/bardb/pkg/config"
	"github.com/barcraft/bardb/pkg/records"
	"github.com/barcraft/bardb/pkg/stage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOperator implements db.Operator over in-memory maps.
type fakeOperator struct {
	drinkIDs      map[int]struct{}
	ingredientIDs map[int]struct{}
	ingredients   map[string]int
	loaded        map[string]int64
}

func newFakeOperator() *fakeOperator {
	return &fakeOperator{
		drinkIDs:      make(map[int]struct{}),
		ingredientIDs: make(map[int]struct{}),
		ingredients:   make(map[string]int),
		loaded:        make(map[string]int64),
	}
}

func (f *fakeOperator) Connect(
	context.Context, *config.DatabaseConfig,
) error {
	return nil
}
func (f *fakeOperator) Close() error        { return nil }
func (f *fakeOperator) Pool() *pgxpool.Pool { return nil }

func (f *fakeOperator) ExistingIDs(
	_ context.Context, table string,
) (map[int]struct{}, error) {
	switch table {
	case "drinks":
		return f.drinkIDs, nil
	case "ingredients":
		return f.ingredientIDs, nil
	}
	return nil, fmt.Errorf("unknown table %s", table)
}

func (f *fakeOperator) NameToID(
	context.Context, string,
) (map[string]int, error) {
	return f.ingredients, nil
}

func (f *fakeOperator) BulkLoad(
	_ context.Context,
	stgr stage.Stager,
	ref stage.Ref,
	table string,
	columns []string,
) (int64, error) {
	_, rows, err := stgr.ReadCSV(ref)
	if err != nil {
		return 0, err
	}
	f.loaded[table] += int64(len(rows))
	return int64(len(rows)), nil
}

type testServer struct {
	srv  *httptest.Server
	stgr stage.Stager
	op   *fakeOperator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	stgr, err := iostage.New(t.TempDir(), t.TempDir())
	require.NoError(t, err)

	op := newFakeOperator()
	s := New(config.New(), stgr, op)

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, stgr: stgr, op: op}
}

func (ts *testServer) post(
	t *testing.T, path string, body any,
) (int, response) {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(
		ts.srv.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func validDrink(id string) records.Raw {
	return records.Raw{
		"idDrink":         id,
		"strDrink":        "Margarita",
		"strTags":         "IBA",
		"strCategory":     "Ordinary Drink",
		"strGlass":        "Cocktail glass",
		"strInstructions": "Shake.",
		"strDrinkThumb":   "https://example.com/m.jpg",
		"strIngredient1":  "Tequila",
		"strIngredient2":  "Salt",
	}
}

func (ts *testServer) stageDrinks(
	t *testing.T, recs []records.Raw,
) stage.Ref {
	t.Helper()
	ref, err := ts.stgr.WriteJSON(stage.KindRawDrinks, recs)
	require.NoError(t, err)
	return ref
}

func TestValidateEndpoint(t *testing.T) {
	ts := newTestServer(t)

	ref := ts.stageDrinks(t, []records.Raw{validDrink("1")})
	code, resp := ts.post(t, "/drinks/validate",
		map[string]string{"drink_file": string(ref)})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)

	bad := validDrink("2")
	delete(bad, "strGlass")
	ref = ts.stageDrinks(t, []records.Raw{bad})
	code, resp = ts.post(t, "/drinks/validate",
		map[string]string{"drink_file": string(ref)})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "fail", resp.Status)
	require.Len(t, resp.InvalidDrinks, 1)
	assert.Equal(t, "2", resp.InvalidDrinks[0].ID)
	assert.Equal(t, []string{"strGlass"},
		resp.InvalidDrinks[0].MissingFields)
}

func TestFilterEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.op.drinkIDs[1] = struct{}{}

	ref := ts.stageDrinks(t,
		[]records.Raw{validDrink("1"), validDrink("2")})
	code, resp := ts.post(t, "/drinks/filter",
		map[string]string{"drink_file": string(ref)})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.Results)
	assert.Equal(t, 1, *resp.Results)
	assert.NotEmpty(t, resp.FileLocation)
}

func TestTransformAndStoreDrinks(t *testing.T) {
	ts := newTestServer(t)

	ref := ts.stageDrinks(t, []records.Raw{validDrink("1")})
	code, resp := ts.post(t, "/drinks/transform",
		map[string]string{"drink_file": string(ref)})
	assert.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", resp.Status)

	code, resp = ts.post(t, "/drinks/store",
		map[string]string{"drink_file": resp.FileLocation})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, int64(1), ts.op.loaded["drinks"])
}

func TestUniqueIngredientsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	ref := ts.stageDrinks(t, []records.Raw{validDrink("1")})
	code, resp := ts.post(t, "/ingredients/unique",
		map[string]string{"drink_file": string(ref)})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, []string{"salt", "tequila"}, resp.Ingredients)
}

func TestIngredientPipelineEndpoints(t *testing.T) {
	ts := newTestServer(t)

	raw := []records.Raw{
		{
			"idIngredient":   "1",
			"strIngredient":  "Tequila",
			"strDescription": "Agave spirit.",
		},
	}
	ref, err := ts.stgr.WriteJSON(stage.KindRawIngredients, raw)
	require.NoError(t, err)

	code, resp := ts.post(t, "/ingredients/filter",
		map[string]string{"ingredients_file": string(ref)})
	assert.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", resp.Status)

	code, resp = ts.post(t, "/ingredients/transform",
		map[string]string{"ingredients_file": resp.FileLocation})
	assert.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", resp.Status)

	code, resp = ts.post(t, "/ingredients/store",
		map[string]string{"ingredients_file": resp.FileLocation})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, int64(1), ts.op.loaded["ingredients"])
}

func TestLinkEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.op.ingredients["Tequila"] = 1
	ts.op.ingredients["Salt"] = 2

	ref := ts.stageDrinks(t, []records.Raw{validDrink("7")})
	code, resp := ts.post(t, "/drink/link/ingredients/transform",
		map[string]string{"drink_file": string(ref)})
	assert.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", resp.Status)
	require.NotEmpty(t, resp.FileLocation)

	code, resp = ts.post(t, "/drink/link/ingredients/store",
		map[string]string{"link_file": resp.FileLocation})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, int64(2),
		ts.op.loaded["drink_ingredients_link"])
}

func TestMalformedRequests(t *testing.T) {
	ts := newTestServer(t)

	// Missing reference field.
	code, resp := ts.post(t, "/drinks/validate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "fail", resp.Status)

	// Reference to a file that does not exist.
	code, resp = ts.post(t, "/drinks/validate",
		map[string]string{"drink_file": "raw_drinks_gone.json"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "fail", resp.Status)

	// Body that is not JSON.
	resp2, err := http.Post(ts.srv.URL+"/drinks/validate",
		"application/json", bytes.NewReader([]byte("not json")))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestStoreFailureIsBusinessOutcome(t *testing.T) {
	ts := newTestServer(t)

	// A transform error on properly staged content is a business
	// outcome, not a malformed request.
	bad := validDrink("9")
	delete(bad, "strGlass")
	ref := ts.stageDrinks(t, []records.Raw{bad})

	code, resp := ts.post(t, "/drinks/transform",
		map[string]string{"drink_file": string(ref)})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "fail", resp.Status)
	assert.Contains(t, resp.Msg, "strGlass")
}
