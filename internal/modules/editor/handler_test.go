package editor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/formcraft/internal/middleware"
	"github.com/mx-space/formcraft/internal/models"
	"github.com/mx-space/formcraft/internal/modules/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type snapshotBody struct {
	Form            models.Form     `json:"form"`
	SelectedFieldID string          `json:"selected_field_id"`
	SelectedField   json.RawMessage `json:"selected_field"`
}

type harness struct {
	t      *testing.T
	router *gin.Engine
	store    *form.BlobStore
	registry *Registry
	formID   string
	sid    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := newStore(t)
	f, err := store.Create(context.Background(), "Survey")
	require.NoError(t, err)

	h := &harness{t: t, store: store, registry: NewRegistry(store, zap.NewNop()), formID: f.ID, sid: "sid-1"}
	h.router = gin.New()
	fakeAuth := func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, "user@example.com")
		c.Set(middleware.ContextKeySID, c.GetHeader("X-Test-Session"))
		c.Next()
	}
	NewHandler(h.registry).RegisterRoutes(h.router.Group("/api/v1"), fakeAuth)
	return h
}

func (h *harness) do(method, path, body string) (*httptest.ResponseRecorder, snapshotBody) {
	h.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Test-Session", h.sid)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var snap snapshotBody
	if w.Code == http.StatusOK {
		require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &snap), w.Body.String())
	}
	return w, snap
}

func (h *harness) path(suffix string) string {
	return "/api/v1/editor/" + h.formID + suffix
}

func TestEditorFlow(t *testing.T) {
	h := newHarness(t)

	w, snap := h.do(http.MethodGet, h.path(""), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Survey", snap.Form.Title)

	w, snap = h.do(http.MethodPost, h.path("/fields"), `{"type":"select"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, snap.Form.Fields, 1)
	fieldID := snap.Form.Fields[0].FieldID()
	assert.Equal(t, fieldID, snap.SelectedFieldID)

	w, _ = h.do(http.MethodPatch, h.path("/selected"), `{"key":"required","value":"true"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = h.do(http.MethodPost, h.path("/selected/options"), "")
	require.Equal(t, http.StatusOK, w.Code)

	w, snap = h.do(http.MethodPatch, h.path("/selected/options/2"), `{"key":"label","value":"Pet Name"}`)
	require.Equal(t, http.StatusOK, w.Code)
	opts, _ := models.FieldOptions(snap.Form.Fields[0])
	assert.Equal(t, models.Option{Value: "pet_name", Label: "Pet Name"}, opts[2])

	w, snap = h.do(http.MethodDelete, h.path("/selected/options/0"), "")
	require.Equal(t, http.StatusOK, w.Code)
	opts, _ = models.FieldOptions(snap.Form.Fields[0])
	assert.Len(t, opts, 2)

	w, snap = h.do(http.MethodPatch, h.path(""), `{"key":"title","value":"Pets"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pets", snap.Form.Title)

	stored, err := h.store.Get(context.Background(), h.formID)
	require.NoError(t, err)
	assert.Equal(t, "Pets", stored.Title)
	assert.True(t, stored.Fields[0].(*models.SelectField).Required)

	w, snap = h.do(http.MethodPost, h.path("/select"), `{"id":"`+fieldID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, snap.SelectedFieldID)

	w, snap = h.do(http.MethodPost, h.path("/select"), `{"id":"`+fieldID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fieldID, snap.SelectedFieldID)

	w, snap = h.do(http.MethodDelete, h.path("/selected"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, snap.Form.Fields)
	assert.Empty(t, snap.SelectedFieldID)
}

func TestEditorSelectionIsPerLoginSession(t *testing.T) {
	h := newHarness(t)
	_, snap := h.do(http.MethodPost, h.path("/fields"), `{"type":"text"}`)
	require.NotEmpty(t, snap.SelectedFieldID)

	h.sid = "sid-2"
	w, snap := h.do(http.MethodGet, h.path(""), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, snap.Form.Fields, 1)
	assert.Empty(t, snap.SelectedFieldID)
}

func TestEditorErrors(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodPost, h.path("/fields"), `{"type":"slider"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = h.do(http.MethodPost, h.path("/fields"), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(http.MethodPatch, h.path(""), `{"key":"id","value":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = h.do(http.MethodDelete, h.path("/selected/options/abc"), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h.formID = "missing"
	w, _ = h.do(http.MethodGet, h.path(""), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/404"`)

	w, _ = h.do(http.MethodPost, h.path("/fields"), `{"type":"text"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditorNoSelectionIsNoop(t *testing.T) {
	h := newHarness(t)
	w, snap := h.do(http.MethodPatch, h.path("/selected"), `{"key":"label","value":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, snap.Form.Fields)

	w, _ = h.do(http.MethodDelete, h.path("/selected"), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEditorDeletedFormIsNotEditable(t *testing.T) {
	h := newHarness(t)
	w, _ := h.do(http.MethodPost, h.path("/fields"), `{"type":"text"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, h.registry.Len())

	require.NoError(t, h.store.Delete(context.Background(), h.formID))

	w, _ = h.do(http.MethodPost, h.path("/fields"), `{"type":"email"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/404"`)
	assert.Equal(t, 0, h.registry.Len())

	w, _ = h.do(http.MethodGet, h.path(""), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = h.do(http.MethodPost, h.path("/fields"), `{"type":"email"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, h.registry.Len())
}

func TestEditorUnknownFormLeavesNoEntry(t *testing.T) {
	h := newHarness(t)
	h.formID = "made-up"
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		path, body := h.path(""), ""
		if method == http.MethodPost {
			path, body = h.path("/fields"), `{"type":"text"}`
		}
		w, _ := h.do(method, path, body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
	assert.Equal(t, 0, h.registry.Len())
}
