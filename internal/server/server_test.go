package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlstudio/modelsync/internal/identity"
	"github.com/ctrlstudio/modelsync/internal/model"
	engine "github.com/ctrlstudio/modelsync/internal/sync"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Engine) {
	t.Helper()
	e, err := engine.New(model.NewProject("Demo"), identity.ContextProvider{})
	require.NoError(t, err)
	srv := httptest.NewServer(Router(Config{Engine: e}))
	t.Cleanup(srv.Close)
	return srv, e
}

func doJSON(t *testing.T, method, url string, body any, actor string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if actor != "" {
		req.Header.Set("X-Actor", actor)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateComponent_FromDefaults(t *testing.T) {
	srv, eng := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/components", map[string]any{
		"type":     "button",
		"name":     "Save Button",
		"position": map[string]float64{"x": 10, "y": 20},
	}, "alice")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]string
	decodeBody(t, resp, &out)
	assert.NotEmpty(t, out["id"])

	p, err := eng.Project()
	require.NoError(t, err)
	require.Len(t, p.Components, 1)
	c := p.Components[0]
	assert.Equal(t, "Save Button", c.Name)
	assert.Equal(t, model.ComponentButton, c.Type)
	// Defaults filled in from the type table.
	assert.NotZero(t, c.Size.Width)
	assert.NotNil(t, p.FindFileByPath("src/components/SaveButton.tsx"))
}

func TestCreateComponent_RequiresActor(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/components", map[string]any{
		"type": "button",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]string
	decodeBody(t, resp, &out)
	assert.Equal(t, "MISSING_ACTOR", out["code"])
}

func TestCreateComponent_UnknownType(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/components", map[string]any{
		"type": "hologram",
	}, "alice")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestComponentLifecycle(t *testing.T) {
	srv, eng := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/components", map[string]any{
		"type": "button", "name": "Save Button",
	}, "alice")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]string
	decodeBody(t, resp, &created)
	id := created["id"]

	resp = doJSON(t, http.MethodPatch, srv.URL+"/v1/components/"+id, map[string]any{
		"name": "Submit Button",
	}, "alice")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p, err := eng.Project()
	require.NoError(t, err)
	assert.Equal(t, "Submit Button", p.FindComponent(id).Name)
	assert.NotNil(t, p.FindFileByPath("src/components/SubmitButton.tsx"))

	resp = doJSON(t, http.MethodDelete, srv.URL+"/v1/components/"+id, nil, "alice")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p, err = eng.Project()
	require.NoError(t, err)
	assert.Nil(t, p.FindComponent(id))
	assert.Nil(t, p.FindFileByPath("src/components/SubmitButton.tsx"))
}

func TestGetProjectAndValidate(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/project")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p model.CTRLProject
	decodeBody(t, resp, &p)
	assert.Equal(t, "Demo", p.Name)

	resp, err = http.Get(srv.URL + "/v1/project/validate")
	require.NoError(t, err)
	defer resp.Body.Close()
	var res struct {
		Valid bool `json:"valid"`
	}
	decodeBody(t, resp, &res)
	assert.True(t, res.Valid)
}

func TestExportImportRoundTrip(t *testing.T) {
	srv, eng := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/v1/components", map[string]any{
		"type": "button", "name": "Save Button",
	}, "alice")

	resp, err := http.Get(srv.URL + "/v1/project/export")
	require.NoError(t, err)
	exported := new(bytes.Buffer)
	_, err = exported.ReadFrom(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	// Blow the project away, then restore it.
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/project/import", exported)
	require.NoError(t, err)
	req.Header.Set("X-Actor", "alice")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p, err := eng.Project()
	require.NoError(t, err)
	require.Len(t, p.Components, 1)
	assert.Equal(t, "Save Button", p.Components[0].Name)
}

func TestUpdateSettings(t *testing.T) {
	srv, eng := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/v1/components", map[string]any{
		"type": "button", "name": "Save Button",
	}, "alice")

	resp := doJSON(t, http.MethodPut, srv.URL+"/v1/settings", map[string]string{
		"framework": "angular",
		"language":  "typescript",
		"styling":   "css",
	}, "alice")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p, err := eng.Project()
	require.NoError(t, err)
	assert.Equal(t, model.FrameworkAngular, p.Settings.Framework)
	assert.NotNil(t, p.FindFileByPath("src/components/SaveButton.ts"))
}

func TestUpdateSettings_RejectsUnknownFramework(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := doJSON(t, http.MethodPut, srv.URL+"/v1/settings", map[string]string{
		"framework": "svelte",
		"language":  "typescript",
		"styling":   "css",
	}, "alice")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScreensAndFiles(t *testing.T) {
	srv, eng := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/screens", map[string]any{
		"name": "Home", "type": "page",
	}, "alice")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/files", map[string]any{
		"path":    "src/util/format.ts",
		"content": "export const noop = () => {};\n",
	}, "alice")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	p, err := eng.Project()
	require.NoError(t, err)
	assert.Len(t, p.Screens, 1)
	require.NotNil(t, p.FindFileByPath("src/util/format.ts"))

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/files?path=src/util/format.ts", nil)
	require.NoError(t, err)
	req.Header.Set("X-Actor", "alice")
	dresp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer dresp.Body.Close()
	require.Equal(t, http.StatusOK, dresp.StatusCode)

	p, err = eng.Project()
	require.NoError(t, err)
	assert.Nil(t, p.FindFileByPath("src/util/format.ts"))
}
