package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewritely/rewritely-be/internal/api"
	"github.com/rewritely/rewritely-be/internal/apperr"
	"github.com/rewritely/rewritely-be/internal/auth"
	"github.com/rewritely/rewritely-be/internal/database"
	"github.com/rewritely/rewritely-be/internal/llm"
	"github.com/rewritely/rewritely-be/internal/models"
	"github.com/rewritely/rewritely-be/internal/services"
)

// fakeProvider is a canned llm.Provider for handler tests.
type fakeProvider struct {
	rewriteErr error
}

func (f *fakeProvider) RewriteBullet(_ context.Context, _, _ string) (*llm.RewriteResult, error) {
	if f.rewriteErr != nil {
		return nil, f.rewriteErr
	}
	return &llm.RewriteResult{
		Bullets:    []string{"Led team of 5 engineers", "Reduced latency by 40%"},
		KeyChanges: [][]string{{"Added metric"}, {"Added quantifiable result"}},
	}, nil
}

func (f *fakeProvider) GenerateStarStory(_ context.Context, _ string) (*models.StarStory, error) {
	return &models.StarStory{Situation: "s", Task: "t", Action: "a", Result: "r"}, nil
}

func (f *fakeProvider) ExtractBullets(_ context.Context, _ string) ([]string, error) {
	return []string{"Shipped feature X"}, nil
}

type testServer struct {
	srv      *httptest.Server
	provider *fakeProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	provider := &fakeProvider{}
	router := api.NewRouter(
		"http://localhost:3000",
		tokens,
		services.NewUserService(db),
		services.NewRewriteService(db),
		provider,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, provider: provider}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, &reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (ts *testServer) register(t *testing.T, email string) string {
	t.Helper()
	resp, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Test User", "email": email, "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := ts.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "up", body["status"])
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.com", "password": "hunter2hunter2"}},
		{"bad email", map[string]string{"name": "A", "email": "not-an-email", "password": "hunter2hunter2"}},
		{"short password", map[string]string{"name": "A", "email": "a@b.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := ts.do(t, http.MethodPost, "/api/auth/register", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ada@example.com")

	resp, _ := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Again", "email": "ada@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "ada@example.com")

	resp, body := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)

	resp, me := ts.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ada@example.com", me["email"])
	_, hasPassword := me["password"]
	assert.False(t, hasPassword)

	resp, _ = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRewriteCRUDLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "ada@example.com")

	// Create
	resp, body := ts.do(t, http.MethodPost, "/api/resume-rewrites", token, map[string]interface{}{
		"content":        "Did things",
		"jobDescription": "A job",
		"tags":           []string{"golang"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	id := data["id"].(string)
	assert.Equal(t, "Untitled Resume Rewrite", data["title"])

	// List
	resp, body = ts.do(t, http.MethodGet, "/api/resume-rewrites", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	// Update
	resp, body = ts.do(t, http.MethodPut, "/api/resume-rewrites/"+id, token, map[string]interface{}{
		"title": "Named now",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "Named now", data["title"])
	assert.Equal(t, "Did things", data["content"])

	// Toggle favorite twice restores the flag
	resp, body = ts.do(t, http.MethodPatch, "/api/resume-rewrites/"+id+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]interface{})["isFavorite"])

	resp, body = ts.do(t, http.MethodPatch, "/api/resume-rewrites/"+id+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["data"].(map[string]interface{})["isFavorite"])

	// Delete
	resp, _ = ts.do(t, http.MethodDelete, "/api/resume-rewrites/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/resume-rewrites/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRewriteOwnerIsolationOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.register(t, "alice@example.com")
	bobToken := ts.register(t, "bob@example.com")

	_, body := ts.do(t, http.MethodPost, "/api/resume-rewrites", aliceToken, map[string]interface{}{
		"content": "c", "jobDescription": "jd",
	})
	id := body["data"].(map[string]interface{})["id"].(string)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/resume-rewrites/" + id},
		{http.MethodPut, "/api/resume-rewrites/" + id},
		{http.MethodDelete, "/api/resume-rewrites/" + id},
		{http.MethodPatch, "/api/resume-rewrites/" + id + "/favorite"},
	} {
		var payload interface{}
		if tc.method == http.MethodPut {
			payload = map[string]interface{}{"title": "stolen"}
		}
		resp, _ := ts.do(t, tc.method, tc.path, bobToken, payload)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/resume-rewrites", "/api/rewrite-resume", "/api/generate-star", "/api/auth/me"} {
		method := http.MethodPost
		if path == "/api/resume-rewrites" || path == "/api/auth/me" {
			method = http.MethodGet
		}
		resp, _ := ts.do(t, method, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRewriteResumeEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "ada@example.com")

	resp, body := ts.do(t, http.MethodPost, "/api/rewrite-resume", token, map[string]string{
		"jobDescription": "Looking for engineers who reduced latency",
		"resumeBullet":   "Did backend work",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rewritten := body["rewritten"].(string)
	assert.Contains(t, rewritten, "Led team of 5 engineers")
	assert.Contains(t, rewritten, "Reduced latency by 40%")

	keyChanges := body["keyChanges"].([]interface{})
	assert.Len(t, keyChanges, 2)

	matches := body["keywordMatches"].([]interface{})
	assert.Len(t, matches, 2)
	// Second suggestion contains both "reduced" and "latency".
	assert.Equal(t, float64(2), matches[1])

	missing := body["missingKeywords"].([]interface{})
	assert.NotEmpty(t, missing)
}

func TestRewriteResumeMissingFields(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "ada@example.com")

	resp, _ := ts.do(t, http.MethodPost, "/api/rewrite-resume", token, map[string]string{
		"jobDescription": "only one field",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRewriteResumeUpstreamFailure(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "ada@example.com")
	ts.provider.rewriteErr = fmt.Errorf("%w: boom", apperr.ErrUpstream)

	resp, body := ts.do(t, http.MethodPost, "/api/rewrite-resume", token, map[string]string{
		"jobDescription": "jd", "resumeBullet": "b",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	// The raw upstream error detail must not leak.
	assert.Equal(t, "AI request failed", body["error"])
}

func TestGenerateStarEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "ada@example.com")

	resp, body := ts.do(t, http.MethodPost, "/api/generate-star", token, map[string]string{
		"bullet": "Led team of 5 engineers",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	star := body["star"].(map[string]interface{})
	assert.Equal(t, "s", star["situation"])
	assert.Equal(t, "r", star["result"])
}

func TestExpiredTokenRejected(t *testing.T) {
	ts := newTestServer(t)
	expired := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := expired.GenerateJWT(models.User{ID: "user-1"})
	require.NoError(t, err)

	resp, _ := ts.do(t, http.MethodGet, "/api/resume-rewrites", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
