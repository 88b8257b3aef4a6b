package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umlstate/umlstate"
	httpadapter "github.com/umlstate/umlstate/internal/adapters/http"
	"github.com/umlstate/umlstate/internal/dto"
	"github.com/umlstate/umlstate/pkg/adapters/memory"
	"github.com/umlstate/umlstate/pkg/observability"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	model := memory.NewModel()
	region := model.AddStateMachine("traffic").AddRegion("main")
	red := region.AddState("Red")
	green := region.AddState("Green")
	region.SetInitial("Red")
	region.AddTransition(red, green, memory.OnSignal("GO"))
	region.AddTransition(green, red, memory.OnSignal("STOP"))

	eng, err := umlstate.NewFromModel(model)
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	return httpadapter.NewHandler(eng, httpadapter.WithMetricsHandler(metrics.Handler()))
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	handler := newTestHandler(t)
	rr := doJSON(t, handler, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetMachine(t *testing.T) {
	handler := newTestHandler(t)
	rr := doJSON(t, handler, http.MethodGet, "/machine", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp dto.MachineResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.States, 2)
	assert.Equal(t, "Red", resp.States[0].Name)
	assert.True(t, resp.States[0].Initial)
	require.Len(t, resp.Transitions, 2)
	assert.Equal(t, dto.TransitionResponse{Source: "Red", Target: "Green", Event: "GO"}, resp.Transitions[0])
}

func TestGetMachineDOT(t *testing.T) {
	handler := newTestHandler(t)
	rr := doJSON(t, handler, http.MethodGet, "/machine/dot", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/vnd.graphviz", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "digraph G")
}

func TestSessionLifecycle(t *testing.T) {
	handler := newTestHandler(t)

	rr := doJSON(t, handler, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var created dto.SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Red", created.Current)

	rr = doJSON(t, handler, http.MethodPost, "/sessions/"+created.ID+"/events", `{"event":"GO"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var advanced dto.SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &advanced))
	assert.Equal(t, "Green", advanced.Current)
	assert.Equal(t, []string{"Red", "Green"}, advanced.History)

	rr = doJSON(t, handler, http.MethodGet, "/sessions/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, handler, http.MethodGet, "/sessions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list dto.SessionListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, []string{created.ID}, list.Sessions)

	rr = doJSON(t, handler, http.MethodDelete, "/sessions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSON(t, handler, http.MethodGet, "/sessions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPostEvent_Rejected(t *testing.T) {
	handler := newTestHandler(t)

	rr := doJSON(t, handler, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var created dto.SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, handler, http.MethodPost, "/sessions/"+created.ID+"/events", `{"event":"BOGUS"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "matched no transition")
}

func TestPostEvent_BadBody(t *testing.T) {
	handler := newTestHandler(t)

	rr := doJSON(t, handler, http.MethodPost, "/sessions/whatever/events", `{`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, handler, http.MethodPost, "/sessions/whatever/events", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPostEvent_UnknownSession(t *testing.T) {
	handler := newTestHandler(t)

	rr := doJSON(t, handler, http.MethodPost, "/sessions/nope/events", `{"event":"GO"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rr := doJSON(t, handler, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, handler, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "umlstate_sessions_total")
}
