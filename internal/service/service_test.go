package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shortlink-service/internal/model"
	"shortlink-service/internal/repository"
	"shortlink-service/internal/shortcode"
)

var testDBCounter atomic.Int64

type testEnv struct {
	repo       *repository.GormLinkRepository
	shortener  *Shortener
	redirector *Redirector
	analytics  *Analytics
}

func setupServices(t *testing.T, codeLength int) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.ShortLink{}, &model.VisitRecord{}))

	logger := zap.NewNop().Sugar()
	repo := repository.NewGormLinkRepository(db)
	generator := shortcode.NewGenerator(codeLength)
	cache := NewLinkCache(nil)

	return &testEnv{
		repo:       repo,
		shortener:  NewShortener(repo, generator, cache, logger),
		redirector: NewRedirector(repo, cache, logger),
		analytics:  NewAnalytics(repo, logger),
	}
}

func TestShorten_RoundTrip(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	link, err := env.shortener.Shorten(ctx, "https://example.com/path", "", nil)
	require.NoError(t, err)
	assert.Len(t, link.ShortCode, 6)
	assert.True(t, link.IsActive)

	destination, err := env.redirector.ResolveAndTrack(ctx, link.ShortCode, Visit{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", destination)
}

func TestShorten_CustomAlias(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	link, err := env.shortener.Shorten(ctx, "https://example.com/path", "abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", link.ShortCode)
	assert.Equal(t, "https://example.com/path", link.OriginalURL)
	assert.True(t, link.IsActive)

	_, err = env.shortener.Shorten(ctx, "https://other.com", "abc", nil)
	assert.ErrorIs(t, err, ErrAliasTaken)
}

func TestShorten_ConcurrentSameAlias(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	var successes, conflicts atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.shortener.Shorten(ctx, "https://example.com", "race", nil)
			switch {
			case err == nil:
				successes.Add(1)
			case assert.ErrorIs(t, err, ErrAliasTaken):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes.Load())
	assert.Equal(t, int64(1), conflicts.Load())
}

func TestShorten_InvalidInput(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	_, err := env.shortener.Shorten(ctx, "not-a-url", "", nil)
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = env.shortener.Shorten(ctx, "ftp://example.com/file", "", nil)
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = env.shortener.Shorten(ctx, "https://example.com", "bad alias!", nil)
	assert.ErrorIs(t, err, ErrInvalidAlias)
}

func TestShorten_ReservedAlias(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	// Reserved regardless of availability.
	for _, alias := range []string{"shorten", "Stats", "HEALTH", "docs"} {
		_, err := env.shortener.Shorten(ctx, "https://example.com", alias, nil)
		assert.ErrorIs(t, err, ErrReservedAlias, "alias %q", alias)
	}
}

func TestShorten_CodeSpaceExhausted(t *testing.T) {
	env := setupServices(t, 1)
	ctx := context.Background()

	// Occupy the entire length-1 code space so every generated candidate
	// collides.
	for _, c := range shortcode.Charset {
		_, err := env.repo.CreateLink(ctx, "https://example.com", string(c), nil)
		require.NoError(t, err)
	}

	_, err := env.shortener.Shorten(ctx, "https://example.com", "", nil)
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
}

func TestResolveAndTrack_RecordsVisit(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	link, err := env.shortener.Shorten(ctx, "https://example.com", "tracked", nil)
	require.NoError(t, err)

	_, err = env.redirector.ResolveAndTrack(ctx, "tracked", Visit{
		Referrer:      "https://a.com",
		UserAgent:     "Mozilla/5.0 Chrome/120.0",
		ClientAddress: "203.0.113.9",
	})
	require.NoError(t, err)

	visits, err := env.repo.ListVisits(ctx, link.ID)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "https://a.com", visits[0].Referrer)
	assert.Equal(t, "Mozilla/5.0 Chrome/120.0", visits[0].UserAgent)
	assert.Equal(t, "203.0.113.9", visits[0].ClientAddress)
	assert.False(t, visits[0].VisitedAt.IsZero())
}

func TestResolveAndTrack_NotFound(t *testing.T) {
	env := setupServices(t, 6)

	_, err := env.redirector.ResolveAndTrack(context.Background(), "missing", Visit{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResolveAndTrack_DeactivatedLink(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	link, err := env.shortener.Shorten(ctx, "https://example.com", "gone", nil)
	require.NoError(t, err)
	require.NoError(t, env.shortener.Deactivate(ctx, "gone"))

	_, err = env.redirector.ResolveAndTrack(ctx, "gone", Visit{})
	assert.ErrorIs(t, err, ErrLinkInactive)

	visits, err := env.repo.ListVisits(ctx, link.ID)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestResolveAndTrack_ExpiredLinkDeactivates(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	link, err := env.shortener.Shorten(ctx, "https://example.com", "stale", &past)
	require.NoError(t, err)
	require.True(t, link.IsActive)

	// First resolve observes the expiry, persists the deactivation and
	// writes no visit.
	_, err = env.redirector.ResolveAndTrack(ctx, "stale", Visit{Referrer: "https://a.com"})
	assert.ErrorIs(t, err, ErrLinkExpired)

	stored, err := env.repo.FindByCode(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	visits, err := env.repo.ListVisits(ctx, link.ID)
	require.NoError(t, err)
	assert.Empty(t, visits)

	// Subsequent resolves see the persisted deactivation.
	_, err = env.redirector.ResolveAndTrack(ctx, "stale", Visit{})
	assert.ErrorIs(t, err, ErrLinkInactive)
}

func TestDelete_CascadesVisits(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	link, err := env.shortener.Shorten(ctx, "https://example.com", "purge-me", nil)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := env.redirector.ResolveAndTrack(ctx, "purge-me", Visit{})
		require.NoError(t, err)
	}

	require.NoError(t, env.shortener.Delete(ctx, "purge-me"))

	_, err = env.repo.FindByCode(ctx, "purge-me")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	count, err := env.repo.CountVisits(ctx, link.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStats_Aggregation(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	_, err := env.shortener.Shorten(ctx, "https://example.com", "abc", nil)
	require.NoError(t, err)

	visits := []Visit{
		{Referrer: "https://a.com", UserAgent: "Mozilla/5.0 Chrome/120.0"},
		{Referrer: "https://b.com", UserAgent: "Mozilla/5.0 Firefox/121.0"},
		{Referrer: "", UserAgent: ""},
	}
	for _, v := range visits {
		_, err := env.redirector.ResolveAndTrack(ctx, "abc", v)
		require.NoError(t, err)
	}

	stats, err := env.analytics.Stats(ctx, "abc")
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.ClickCount)
	assert.Equal(t, map[string]int64{
		"https://a.com": 1,
		"https://b.com": 1,
		"Direct":        1,
	}, stats.Referrers)
	assert.Equal(t, map[string]int64{
		"Chrome":  1,
		"Firefox": 1,
		"Other":   1,
	}, stats.BrowserBreakdown)

	require.Len(t, stats.RecentVisits, 3)
	// Most recent first.
	assert.Equal(t, "", stats.RecentVisits[0].Referrer)
	assert.Equal(t, "https://b.com", stats.RecentVisits[1].Referrer)
	assert.Equal(t, "https://a.com", stats.RecentVisits[2].Referrer)
}

func TestStats_RecentVisitsCapped(t *testing.T) {
	env := setupServices(t, 6)
	ctx := context.Background()

	_, err := env.shortener.Shorten(ctx, "https://example.com", "busy", nil)
	require.NoError(t, err)

	for i := 0; i < 15; i++ {
		_, err := env.redirector.ResolveAndTrack(ctx, "busy", Visit{Referrer: fmt.Sprintf("ref-%d", i)})
		require.NoError(t, err)
	}

	stats, err := env.analytics.Stats(ctx, "busy")
	require.NoError(t, err)
	assert.Equal(t, int64(15), stats.ClickCount)
	require.Len(t, stats.RecentVisits, 10)
	assert.Equal(t, "ref-14", stats.RecentVisits[0].Referrer)
	assert.Equal(t, "ref-5", stats.RecentVisits[9].Referrer)
}

func TestStats_NotFound(t *testing.T) {
	env := setupServices(t, 6)

	_, err := env.analytics.Stats(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClassifyBrowser(t *testing.T) {
	tests := []struct {
		userAgent string
		want      string
	}{
		{"Mozilla/5.0 (Windows NT 10.0) Chrome/120.0 Safari/537.36", "Chrome"},
		{"Mozilla/5.0 (X11; Linux) Gecko/20100101 Firefox/121.0", "Firefox"},
		{"Mozilla/5.0 (Macintosh) AppleWebKit/605.1.15 Version/17.0 Safari/605.1.15", "Safari"},
		{"curl/8.4.0", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyBrowser(tt.userAgent), "user agent: %s", tt.userAgent)
	}
}
