package seatingcharts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stepperslife/internal/shared/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAuth(actor identity.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identity.ContextUserID, actor.UserID.String())
		c.Set(identity.ContextUserRole, string(actor.Role))
		c.Next()
	}
}

func newTestRouter(f *chartFixture, actor identity.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupSeatingChartRoutes(r.Group("/api/v1"), NewController(f.svc), fakeAuth(actor))
	return r
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestController_CreateAndFetch(t *testing.T) {
	f := newChartFixture(t)
	f.allowOwner()
	r := newTestRouter(f, f.organizer)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/organizer/seating-charts", map[string]interface{}{
		"event_id":      f.eventID.String(),
		"name":          "Main Floor",
		"seating_style": "TABLE_BASED",
		"sections":      []Section{TableSection("s1", "Floor", []string{"t1"}, 4)},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created SeatingChartResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 4, created.TotalSeats)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/seating-charts/"+created.ID.String()+"/availability", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var avail AvailabilityResponse
	require.NoError(t, json.Unmarshal(env.Data, &avail))
	assert.Equal(t, 4, avail.Counts[StateAvailable])
}

func TestController_ErrorMapping(t *testing.T) {
	f := newChartFixture(t)
	r := newTestRouter(f, f.organizer)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/seating-charts/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Status)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/seating-charts/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"kind":"not_found"}`, string(env.Errors))

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/organizer/seating-charts", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_RequiresOrganizerRole(t *testing.T) {
	f := newChartFixture(t)
	r := newTestRouter(f, identity.Actor{UserID: uuid.New(), Role: identity.RoleUser})

	w, _ := doJSON(t, r, http.MethodDelete, "/api/v1/organizer/seating-charts/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
