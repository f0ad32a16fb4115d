package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

func getItems(t *testing.T, c *testClient, tab string, query url.Values) apiItemsResponse {
	t.Helper()
	rec := c.get("/api/tabs/" + tab + "/items?" + query.Encode())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp apiItemsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAPITabs(t *testing.T) {
	c, _ := newTestClient(t)

	rec := c.get("/api/tabs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.cookie, "the API is stateless")

	var tabs []core.TabInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tabs))
	require.Len(t, tabs, 7)
	assert.Equal(t, "eleves", tabs[0].ID)
	assert.Equal(t, 30, tabs[0].Count)
	assert.Equal(t, "salles", tabs[2].ID)
	assert.Equal(t, 12, tabs[2].Count)
}

func TestAPIItems_DefaultPage(t *testing.T) {
	c, _ := newTestClient(t)

	resp := getItems(t, c, "eleves", nil)
	assert.Equal(t, "eleves", resp.Tab.ID)
	assert.Len(t, resp.Items, 10)
	assert.Equal(t, "1", resp.Items[0].ID)
	assert.Equal(t, "Aminata Diallo", resp.Items[0].Cells["nom"])
	assert.Equal(t, 30, resp.Page.TotalItems)
	assert.Equal(t, 3, resp.Page.TotalPages)
	assert.False(t, resp.Page.HasPrev)
	assert.True(t, resp.Page.HasNext)
}

func TestAPIItems_FiltersAndPaging(t *testing.T) {
	c, _ := newTestClient(t)

	resp := getItems(t, c, "eleves", url.Values{"filter[classe]": {"6A"}})
	assert.Equal(t, 4, resp.Page.TotalItems)
	for _, item := range resp.Items {
		assert.Equal(t, "6A", item.Cells["classe"])
	}

	resp = getItems(t, c, "eleves", url.Values{
		"filter[classe]": {"6A"},
		"size":           {"3"},
		"page":           {"2"},
	})
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Page.Current)
	assert.True(t, resp.Page.HasPrev)
	assert.False(t, resp.Page.HasNext)

	// Out-of-range pages clamp to the last one.
	resp = getItems(t, c, "eleves", url.Values{"page": {"40"}})
	assert.Equal(t, 3, resp.Page.Current)

	resp = getItems(t, c, "eleves", url.Values{"size": {"9223372036854775807"}, "page": {"2"}})
	assert.Len(t, resp.Items, 30)
	assert.Equal(t, 1, resp.Page.Current)
	assert.Equal(t, 1, resp.Page.TotalPages)
	assert.False(t, resp.Page.HasNext)
}

func TestAPIItems_EmptyResult(t *testing.T) {
	c, _ := newTestClient(t)

	resp := getItems(t, c, "eleves", url.Values{"search": {"zzz"}})
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 1, resp.Page.Current)
	assert.Equal(t, 0, resp.Page.TotalItems)
	assert.Equal(t, 1, resp.Page.TotalPages)
	assert.False(t, resp.Page.HasNext)
}

func TestAPIItems_Errors(t *testing.T) {
	c, _ := newTestClient(t)

	rec := c.get("/api/tabs/cantine/items")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "TAB001", decodeError(t, rec).Code)

	rec = c.get("/api/tabs/eleves/items?" + url.Values{"filter[couleur]": {"bleu"}}.Encode())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UI002", decodeError(t, rec).Code)
}

func TestAPI_CORS(t *testing.T) {
	cfg := testConfig()
	cfg.Security.CORSOrigins = []string{"https://portail.ecole.sn"}
	s, _ := newTestServer(t, cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tabs", nil)
	req.Header.Set("Origin", "https://portail.ecole.sn")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, "https://portail.ecole.sn", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/tabs", nil)
	req.Header.Set("Origin", "https://ailleurs.example")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestParseIntParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&size=-1&bad=x", nil)
	assert.Equal(t, 3, parseIntParam(req, "page", 1))
	assert.Equal(t, 10, parseIntParam(req, "size", 10))
	assert.Equal(t, 7, parseIntParam(req, "bad", 7))
	assert.Equal(t, 5, parseIntParam(req, "missing", 5))
}
