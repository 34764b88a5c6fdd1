// ABOUTME: End-to-end handler tests over a temp-dir SQLite store.
// ABOUTME: Drives the gin router with httptest and checks the JSON envelope.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/healthtrack/internal/auth"
	"github.com/harperreed/healthtrack/internal/logger"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t      *testing.T
	srv    *Server
	router *gin.Engine
	store  *storage.DB
}

type apiResponse struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.Open(filepath.Join(t.TempDir(), "healthtrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tokens, err := auth.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	if opts.RateLimit == 0 {
		opts.RateLimit, opts.RateBurst = 1000, 1000
	}
	srv := New(store, tokens, logger.Nop(), opts)
	return &testEnv{t: t, srv: srv, router: srv.Router(), store: store}
}

func (e *testEnv) do(method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func decodeData[T any](t *testing.T, resp apiResponse) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v), string(resp.Data))
	return v
}

// register creates an account and returns its token.
func (e *testEnv) register(username string, extra map[string]any) string {
	e.t.Helper()
	body := map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret1",
	}
	for k, v := range extra {
		body[k] = v
	}
	rec, resp := e.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[tokenResponse](e.t, resp).Token
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t, Options{})

	for _, path := range []string{"/health", "/api/health"} {
		rec, resp := env.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
		data := decodeData[map[string]string](t, resp)
		assert.Equal(t, "ok", data["status"])
		assert.Equal(t, Version, data["version"])
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, Options{})
	rec, resp := env.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", resp.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, Options{})
	token := env.register("alice", map[string]any{"height": 165.0, "gender": "female", "birthday": "1980-04-02"})
	require.NotEmpty(t, token)

	rec, resp := env.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "alice", "email": "other@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_ENTRY", resp.Code)

	rec, resp = env.do(http.MethodPost, "/api/auth/login", "", map[string]any{"login": "alice@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeData[tokenResponse](t, resp)
	assert.Equal(t, "alice", login.User.Username)
	assert.Equal(t, int64(3600), login.ExpiresIn)

	rec, resp = env.do(http.MethodPost, "/api/auth/login", "", map[string]any{"login": "alice", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Code)

	rec, resp = env.do(http.MethodPost, "/api/auth/login", "", map[string]any{"login": "nobody", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Code)

	rec, resp = env.do(http.MethodGet, "/api/auth/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(resp.Data), "password")
	assert.Contains(t, string(resp.Data), `"height":165`)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, Options{})

	tests := []map[string]any{
		{"username": "a-b", "email": "ab@example.com", "password": "secret1"},
		{"username": "ab", "email": "ab@example.com", "password": "secret1"},
		{"username": "abc", "email": "not-an-email", "password": "secret1"},
		{"username": "abc", "email": "abc@example.com", "password": "123"},
		{"username": "abc", "email": "abc@example.com", "password": "secret1", "height": 20},
		{"username": "abc", "email": "abc@example.com", "password": "secret1", "birthday": "02/04/1980"},
	}
	for i, body := range tests {
		rec, resp := env.do(http.MethodPost, "/api/auth/register", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "case %d: %s", i, rec.Body.String())
		assert.Equal(t, "VALIDATION_ERROR", resp.Code, "case %d", i)
	}
}

func TestUpdateMeAndPassword(t *testing.T) {
	env := newTestEnv(t, Options{})
	token := env.register("alice", nil)

	rec, resp := env.do(http.MethodPut, "/api/auth/profile", token, map[string]any{"nickname": "Al", "birthday": "1950-01-01"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(resp.Data), `"nickname":"Al"`)

	rec, _ = env.do(http.MethodPut, "/api/auth/password", token, map[string]any{"old_password": "wrong1", "new_password": "newsecret"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(http.MethodPut, "/api/auth/password", token, map[string]any{"old_password": "secret1", "new_password": "newsecret"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(http.MethodPost, "/api/auth/login", "", map[string]any{"login": "alice", "password": "newsecret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = env.do(http.MethodPost, "/api/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeData[tokenResponse](t, resp).Token)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, Options{})

	rec, resp := env.do(http.MethodGet, "/api/health/records", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", resp.Code)

	rec, resp = env.do(http.MethodGet, "/api/health/records", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", resp.Code)
}

func TestRecordLifecycle(t *testing.T) {
	env := newTestEnv(t, Options{})
	alice := env.register("alice", nil)
	bob := env.register("bob", nil)

	rec, resp := env.do(http.MethodPost, "/api/health/records", alice, map[string]any{
		"type": "weight", "value": 71.5, "note": "morning", "record_date": "2025-06-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeData[map[string]any](t, resp)
	id := created["id"].(string)

	rec, resp = env.do(http.MethodGet, "/api/health/records/"+id[:8], alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 71.5, decodeData[map[string]any](t, resp)["value"])

	rec, _ = env.do(http.MethodGet, "/api/health/records/"+id, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp = env.do(http.MethodPut, "/api/health/records/"+id, alice, map[string]any{"value": 70.9})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 70.9, decodeData[map[string]any](t, resp)["value"])

	rec, _ = env.do(http.MethodDelete, "/api/health/records/"+id, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = env.do(http.MethodDelete, "/api/health/records/"+id, alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(http.MethodGet, "/api/health/records/"+id, alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordValidation(t *testing.T) {
	env := newTestEnv(t, Options{})
	token := env.register("alice", nil)

	bad := []map[string]any{
		{"type": "weight", "value": -1},
		{"type": "mood", "value": 3},
		{"type": "steps"},
		{"type": "steps", "value": 10, "record_date": "yesterday"},
		{"type": "steps", "value": 10, "note": strings.Repeat("x", 501)},
	}
	for i, body := range bad {
		rec, resp := env.do(http.MethodPost, "/api/health/records", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "case %d: %s", i, rec.Body.String())
		assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	}

	rec, _ := env.do(http.MethodGet, "/api/health/records?limit=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = env.do(http.MethodGet, "/api/health/records?type=mood", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchAndList(t *testing.T) {
	env := newTestEnv(t, Options{})
	token := env.register("alice", nil)

	var records []map[string]any
	for i := 1; i <= 5; i++ {
		records = append(records, map[string]any{
			"type": "steps", "value": 1000 * i, "record_date": fmt.Sprintf("2025-06-0%d", i),
		})
	}
	records = append(records, map[string]any{"type": "sleep", "value": 7.5, "record_date": "2025-06-03"})

	rec, resp := env.do(http.MethodPost, "/api/health/records/batch", token, map[string]any{"records": records})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, float64(6), decodeData[map[string]any](t, resp)["inserted_count"])

	rec, resp = env.do(http.MethodGet, "/api/health/records?type=steps&start_date=2025-06-02&limit=2&offset=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeData[struct {
		Records []map[string]any `json:"records"`
		Total   int              `json:"total"`
	}](t, resp)
	assert.Equal(t, 4, list.Total)
	require.Len(t, list.Records, 2)
	assert.Equal(t, float64(4000), list.Records[0]["value"])
	assert.Equal(t, float64(3000), list.Records[1]["value"])

	tooMany := make([]map[string]any, storage.MaxBatchSize+1)
	for i := range tooMany {
		tooMany[i] = map[string]any{"type": "water", "value": 250}
	}
	rec, _ = env.do(http.MethodPost, "/api/health/records/batch", token, map[string]any{"records": tooMany})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(http.MethodPost, "/api/health/records/batch", token, map[string]any{"records": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisEndpoints(t *testing.T) {
	env := newTestEnv(t, Options{})
	token := env.register("alice", map[string]any{"height": 170.0, "birthday": "1990-05-05", "generate_history": true})

	rec, resp := env.do(http.MethodGet, "/api/health/analysis", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decodeData[map[string]any](t, resp)
	assert.Equal(t, "generic", report["source"])
	score := report["health_score"].(float64)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
	assert.NotEmpty(t, report["recommendations"])
	assert.NotNil(t, report["weekly"])

	rec, resp = env.do(http.MethodGet, "/api/health-profile/analysis/personalized", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	personalized := decodeData[map[string]any](t, resp)
	assert.Equal(t, "personalized", personalized["source"])
	assert.NotNil(t, personalized["baseline"])

	rec, resp = env.do(http.MethodGet, "/api/health-profile/standards", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(resp.Data), `"age_group":"adult"`)

	rec, resp = env.do(http.MethodGet, "/api/health/trends/steps?period=month", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	trend := decodeData[map[string]any](t, resp)
	assert.Equal(t, "month", trend["period"])
	points := trend["points"].([]any)
	assert.NotEmpty(t, points)
	assert.LessOrEqual(t, len(points), 31)

	rec, resp = env.do(http.MethodGet, "/api/health/statistics/weight?period=bogus", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeData[map[string]any](t, resp)
	assert.Equal(t, "week", stats["period"])

	rec, _ = env.do(http.MethodGet, "/api/health/trends/mood", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = env.do(http.MethodGet, "/api/health/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	today := decodeData[map[string]any](t, resp)
	assert.Equal(t, time.Now().Format("2006-01-02"), today["date"])
}

func TestGenerateHistoryEndpoint(t *testing.T) {
	env := newTestEnv(t, Options{})
	token := env.register("alice", nil)

	rec, resp := env.do(http.MethodPost, "/api/health/mock-data", token, map[string]any{"days": 400})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)

	rec, resp = env.do(http.MethodPost, "/api/health/mock-data", token, map[string]any{"days": 5, "demo_mode": true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decodeData[map[string]any](t, resp)
	assert.Equal(t, float64(40), res["inserted_count"])
	assert.Equal(t, "demo", res["mode"])
	assert.NotEmpty(t, res["description"])
}

func TestProfileAndGoals(t *testing.T) {
	env := newTestEnv(t, Options{})
	token := env.register("alice", nil)

	rec, resp := env.do(http.MethodGet, "/api/health-profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(resp.Data), `"age_group":"adult"`)

	rec, resp = env.do(http.MethodPut, "/api/health-profile", token, map[string]any{
		"age_group": "senior", "activity_level": "sedentary", "has_diabetes": true,
		"personalized_steps_goal": 5000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(resp.Data), `"has_diabetes":true`)

	rec, _ = env.do(http.MethodPut, "/api/health-profile", token, map[string]any{"age_group": "toddler"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = env.do(http.MethodPut, "/api/health-profile", token, map[string]any{"age_group": "adult", "personalized_steps_goal": 60000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = env.do(http.MethodPut, "/api/health-profile/doctor-notes", token, map[string]any{"notes": "Walk daily."})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(resp.Data), `"doctor_notes":"Walk daily."`)
	assert.Contains(t, string(resp.Data), `"age_group":"senior"`)

	rec, _ = env.do(http.MethodDelete, "/api/health-profile", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = env.do(http.MethodDelete, "/api/health-profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp = env.do(http.MethodGet, "/api/health/goals", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(8000), decodeData[map[string]any](t, resp)["steps_goal"])

	rec, resp = env.do(http.MethodPut, "/api/health/goals", token, map[string]any{"steps_goal": 12000, "weight_goal": 60})
	require.Equal(t, http.StatusOK, rec.Code)
	goals := decodeData[map[string]any](t, resp)
	assert.Equal(t, float64(12000), goals["steps_goal"])
	assert.Equal(t, float64(2000), goals["water_goal"])
	assert.Equal(t, float64(60), goals["weight_goal"])

	rec, _ = env.do(http.MethodPut, "/api/health/goals", token, map[string]any{"steps_goal": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicCatalog(t *testing.T) {
	env := newTestEnv(t, Options{})

	rec, resp := env.do(http.MethodGet, "/api/public/tips?category=sleep", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tips := decodeData[[]map[string]any](t, resp)
	require.Len(t, tips, 2)

	rec, resp = env.do(http.MethodGet, "/api/public/tips/"+tips[0]["id"].(string), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tips[0]["title"], decodeData[map[string]any](t, resp)["title"])

	rec, _ = env.do(http.MethodGet, "/api/public/tips/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = env.do(http.MethodGet, "/api/public/tips/00000000-0000-0000-0000-000000000001", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp = env.do(http.MethodGet, "/api/public/tips/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]string](t, resp), 5)

	rec, resp = env.do(http.MethodGet, "/api/public/daily-tip", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeData[map[string]any](t, resp)["title"])

	rec, resp = env.do(http.MethodGet, "/api/public/exercises?weather=rainy&intensity=high", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]map[string]any](t, resp), 2)

	rec, resp = env.do(http.MethodGet, "/api/public/exercises/recommendations", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]map[string]any](t, resp), 2)

	rec, resp = env.do(http.MethodGet, "/api/public/exercises/weather-types", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"all", "cloudy", "rainy", "sunny"}, decodeData[[]string](t, resp))

	rec, _ = env.do(http.MethodGet, "/api/public/exercises?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
