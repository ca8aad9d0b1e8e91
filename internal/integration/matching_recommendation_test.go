package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"talent-match/internal/app"
	"talent-match/internal/config"
	"talent-match/internal/database/seeder"
	"talent-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type recommendationItem struct {
	ID           uuid.UUID `json:"id"`
	JobID        uuid.UUID `json:"job_id"`
	GenerationID uuid.UUID `json:"generation_id"`
	MatchScore   int       `json:"match_score"`
	Reasoning    string    `json:"reasoning"`
	Viewed       bool      `json:"viewed"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	Job          *struct {
		ID             uuid.UUID `json:"id"`
		Title          string    `json:"title"`
		RequiredSkills []struct {
			Name string `json:"name"`
		} `json:"required_skills"`
	} `json:"job"`
}

type generationData struct {
	GenerationID    uuid.UUID            `json:"generation_id"`
	Count           int                  `json:"count"`
	ActiveJobs      int                  `json:"active_jobs"`
	Recommendations []recommendationItem `json:"recommendations"`
}

const goCandidateEmail = "candidate.go@example.com"

func TestIntegration_GenerateListAndRegenerate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c := newTestContainer(t, ctx)
	fiberApp := app.New(c).Fiber

	var candidateID uuid.UUID
	require.NoError(t, c.DB.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, goCandidateEmail).Scan(&candidateID))

	tok, err := c.JWT.GenerateAccessToken(candidateID, goCandidateEmail, jwt.RoleCandidate)
	require.NoError(t, err)

	first := generate(t, fiberApp, tok)
	require.NotEmpty(t, first.Recommendations, "demo go candidate should match the go backend job")
	assert.Equal(t, first.Count, len(first.Recommendations))
	assertRanked(t, first.Recommendations)
	for _, r := range first.Recommendations {
		assert.Equal(t, first.GenerationID, r.GenerationID)
		assert.WithinDuration(t, r.CreatedAt.Add(30*24*time.Hour), r.ExpiresAt, time.Second)
	}

	listed := list(t, fiberApp, tok)
	assert.Len(t, listed, len(first.Recommendations))
	assertRanked(t, listed)
	for _, it := range listed {
		require.NotNil(t, it.Job, "listed recommendation %s has no job", it.ID)
		assert.Equal(t, it.JobID, it.Job.ID)
		assert.NotEmpty(t, it.Job.Title)
		assert.NotEmpty(t, it.Job.RequiredSkills)
	}

	second := generate(t, fiberApp, tok)
	assert.NotEqual(t, first.GenerationID, second.GenerationID)
	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, second.Count, countRows(t, ctx, c, candidateID))

	// Regeneration upserts on (candidate, job), so ids returned by generate are the persisted ones.
	firstIDs := make(map[uuid.UUID]uuid.UUID, len(first.Recommendations))
	for _, r := range first.Recommendations {
		firstIDs[r.JobID] = r.ID
	}
	for _, r := range second.Recommendations {
		assert.Equal(t, firstIDs[r.JobID], r.ID, "job %s changed id", r.JobID)
		got := get(t, fiberApp, tok, r.ID)
		assert.Equal(t, r.JobID, got.JobID)
		assert.Equal(t, second.GenerationID, got.GenerationID)
		require.NotNil(t, r.Job)
		require.NotNil(t, got.Job)
		assert.Equal(t, r.Job.Title, got.Job.Title)
	}

	// Concurrent regenerations converge on one set without duplicate (candidate, job) rows.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Recommendations.Generate(ctx, candidateID)
		}()
	}
	wg.Wait()

	assert.Equal(t, first.Count, countRows(t, ctx, c, candidateID))
	var generations int
	require.NoError(t, c.DB.QueryRow(ctx,
		`SELECT COUNT(DISTINCT generation_id) FROM recommendations WHERE candidate_id = $1`, candidateID,
	).Scan(&generations))
	assert.Equal(t, 1, generations)
}

func TestIntegration_RecruiterCannotGenerate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := newTestContainer(t, ctx)
	fiberApp := app.New(c).Fiber

	tok, err := c.JWT.GenerateAccessToken(uuid.New(), "someone@example.com", jwt.RoleRecruiter)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/generate", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := fiberApp.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func newTestContainer(t *testing.T, ctx context.Context) *app.Container {
	t.Helper()

	cfg := testConfig(t)
	c, err := app.NewContainer(ctx, cfg, nil, app.WithSeeders(seeder.WithDemo()))
	require.NoError(t, err)

	t.Cleanup(func() {
		cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = c.DB.Exec(cctx, `DELETE FROM users WHERE email LIKE '%@example.com'`)
		_ = c.Close()
	})
	return c
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	env := func(key, fallback string) string {
		if v := strings.TrimSpace(os.Getenv("TALENT_TEST_" + key)); v != "" {
			return v
		}
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	name := env("DB_NAME", "")
	user := env("DB_USER", "")
	if name == "" || user == "" {
		t.Skip("missing test DB env vars: set TALENT_TEST_DB_NAME/USER (or DB_NAME/DB_USER) and optionally HOST/PORT/PASSWORD")
	}

	return config.Config{
		App: config.AppConfig{AppName: "talent-match-test", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			DBHost:        env("DB_HOST", "localhost"),
			DBPort:        env("DB_PORT", "5432"),
			DBName:        name,
			DBUser:        user,
			DBPassword:    env("DB_PASSWORD", ""),
			DBSSLMode:     env("DB_SSL_MODE", "disable"),
			RunMigrations: true,
			RunSeeders:    true,
		},
		Redis: config.RedisConfig{
			Host: env("REDIS_HOST", "localhost"),
			Port: env("REDIS_PORT", "6379"),
			TTL:  time.Minute,
		},
		JWT: config.JWTConfig{
			AccessSecret:    "test-access-secret",
			RefreshSecret:   "test-refresh-secret",
			AccessExpiresIn: 15 * time.Minute,
		},
		Matching: config.MatchingConfig{Workers: 4, LeaseTTL: 10 * time.Second},
	}
}

func generate(t *testing.T, a *fiber.App, tok string) generationData {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/generate", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := a.Test(req, fiber.TestConfig{Timeout: 20 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var out generationData
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func list(t *testing.T, a *fiber.App, tok string) []recommendationItem {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?limit=100", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := a.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var out []recommendationItem
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func get(t *testing.T, a *fiber.App, tok string, id uuid.UUID) recommendationItem {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/"+id.String(), nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := a.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "recommendation %s", id)

	var env semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var out recommendationItem
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func assertRanked(t *testing.T, items []recommendationItem) {
	t.Helper()

	seen := make(map[uuid.UUID]struct{}, len(items))
	for i, it := range items {
		assert.GreaterOrEqual(t, it.MatchScore, 50)
		if i > 0 {
			assert.LessOrEqual(t, it.MatchScore, items[i-1].MatchScore, "not sorted desc at %d", i)
		}
		_, dup := seen[it.JobID]
		assert.False(t, dup, "duplicate job %s", it.JobID)
		seen[it.JobID] = struct{}{}
	}
}

func countRows(t *testing.T, ctx context.Context, c *app.Container, candidateID uuid.UUID) int {
	t.Helper()

	var n int
	require.NoError(t, c.DB.QueryRow(ctx, `SELECT COUNT(*) FROM recommendations WHERE candidate_id = $1`, candidateID).Scan(&n))
	return n
}
