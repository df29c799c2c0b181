package demo_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyrinjs/Kyrin/app/demo"
	"github.com/kyrinjs/Kyrin/core/database"
)

func newTestApp(t *testing.T) *demo.App {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := demo.NewApp(demo.WithDatabase(db))
	require.NoError(t, err)
	return app
}

func do(app *demo.App, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.Web().ServeHTTP(rec, req)
	return rec
}

func TestTaskLifecycle(t *testing.T) {
	app := newTestApp(t)

	rec := do(app, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(app, "GET", "/tasks", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(app, "POST", "/tasks", `{"title":"write tests"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"write tests","done":false}`, rec.Body.String())

	rec = do(app, "GET", "/tasks/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(app, "PUT", "/tasks/1/done", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"done":1`)

	rec = do(app, "DELETE", "/tasks/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(app, "GET", "/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "task not found", rec.Body.String())
}

func TestTaskValidation(t *testing.T) {
	app := newTestApp(t)

	rec := do(app, "POST", "/tasks", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title is required", rec.Body.String())

	rec = do(app, "POST", "/tasks", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(app, "PUT", "/tasks/abc/done", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(app, "DELETE", "/tasks/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
