package form

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/formcraft/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *BlobStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, _ := newTestStore(t, "")
	r := gin.New()
	NewHandler(store).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return r, store
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerCreateDefaultsTitle(t *testing.T) {
	r, store := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/forms", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Untitled Form", created["title"])
	assert.Equal(t, []any{}, created["fields"])

	w = do(r, http.MethodPost, "/api/v1/forms", `{"title":"Feedback"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	forms, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, "Feedback", forms[1].Title)
}

func TestHandlerListAndGet(t *testing.T) {
	r, store := newTestRouter(t)
	f, err := store.Create(context.Background(), "One")
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/api/v1/forms", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, []Summary{{ID: f.ID, Title: "One", Description: models.DefaultFormDescription}}, list.Data)

	w = do(r, http.MethodGet, "/api/v1/forms/"+f.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Form
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, f.Equal(&got))

	w = do(r, http.MethodGet, "/api/v1/forms/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/404"`)
}

func TestHandlerUpdate(t *testing.T) {
	r, store := newTestRouter(t)
	ctx := context.Background()
	f, _ := store.Create(ctx, "One")

	w := do(r, http.MethodPut, "/api/v1/forms/"+f.ID, `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got, _ := store.Get(ctx, f.ID)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, models.DefaultFormDescription, got.Description)

	full := `{"id":"` + f.ID + `","title":"Full","description":"","fields":[{"id":"a","type":"tel","label":"Phone","required":true,"placeholder":"555"}]}`
	w = do(r, http.MethodPut, "/api/v1/forms/"+f.ID, full)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got, _ = store.Get(ctx, f.ID)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, models.FieldTypeTel, got.Fields[0].Kind())

	w = do(r, http.MethodPut, "/api/v1/forms/other", full)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/v1/forms/missing", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPut, "/api/v1/forms/"+f.ID, `{"title":"x","colour":"red"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandlerDelete(t *testing.T) {
	r, store := newTestRouter(t)
	ctx := context.Background()
	f, _ := store.Create(ctx, "One")

	w := do(r, http.MethodDelete, "/api/v1/forms/"+f.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	got, _ := store.Get(ctx, f.ID)
	assert.Nil(t, got)
}

func TestHandlerFieldTypes(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/v1/fields/types", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.FieldTypeInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.FieldTypes(), body.Data)
}
