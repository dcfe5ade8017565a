package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/internal/server"
	"tg_giftwatch/internal/worker"
)

type fakeMonitor struct {
	stats  worker.Stats
	active bool
}

func (m *fakeMonitor) Stats() worker.Stats {
	return m.stats
}

func (m *fakeMonitor) SetActive(active bool) bool {
	was := m.active
	m.active = active
	return was
}

type fakeArchive struct {
	gifts []entity.ArchivedGift
}

func (a *fakeArchive) List(_ context.Context, limit, offset int) ([]entity.ArchivedGift, error) {
	if offset >= len(a.gifts) {
		return nil, nil
	}

	end := min(offset+limit, len(a.gifts))

	return a.gifts[offset:end], nil
}

func newTestRouter(monitor *fakeMonitor, archive *fakeArchive) http.Handler {
	r := chi.NewRouter()
	server.NewServer(server.NewGiftServer(monitor, archive)).RegisterRoutes(r)
	return r
}

func TestGetV1Status(t *testing.T) {
	rq := require.New(t)

	monitor := &fakeMonitor{stats: worker.Stats{
		Active:         true,
		Primed:         true,
		LastHash:       9,
		Polls:          3,
		EmittedEvents:  2,
		KnownGifts:     3,
		LimitedGifts:   1,
		AvailableGifts: 2,
	}}

	router := newTestRouter(monitor, &fakeArchive{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", http.NoBody))

	rq.Equal(http.StatusOK, rec.Code)
	rq.JSONEq(
		`{"active":true,"primed":true,"lastHash":9,"polls":3,"pollFailures":0,"emittedEvents":2,"knownGifts":3,"limitedGifts":1,"availableGifts":2}`,
		rec.Body.String(),
	)
}

func TestGetV1Gifts(t *testing.T) {
	rq := require.New(t)

	archive := &fakeArchive{gifts: []entity.ArchivedGift{
		{
			Gift:         entity.Gift{ID: 1, Title: "Delicious Cake", Stars: 100, Limited: true},
			DiscoveredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			Gift:         entity.Gift{ID: 2, Title: entity.TitleUnknown, Stars: 50},
			DiscoveredAt: time.Date(2025, 1, 2, 3, 4, 6, 0, time.UTC),
		},
	}}

	router := newTestRouter(&fakeMonitor{}, archive)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/gifts?limit=1", http.NoBody))

	rq.Equal(http.StatusOK, rec.Code)
	rq.JSONEq(
		`[{"id":1,"title":"Delicious Cake","stars":100,"limited":true,"soldOut":false,"requirePremium":false,"canUpgrade":false,"availabilityRemains":null,"availabilityTotal":null,"discoveredAt":"2025-01-02T03:04:05Z"}]`,
		rec.Body.String(),
	)
}

func TestGetV1GiftsInvalidPaging(t *testing.T) {
	rq := require.New(t)

	router := newTestRouter(&fakeMonitor{}, &fakeArchive{})

	for _, target := range []string{
		"/v1/gifts?limit=0",
		"/v1/gifts?limit=hello",
		"/v1/gifts?limit=100500",
		"/v1/gifts?offset=-1",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, http.NoBody))

		rq.Equal(http.StatusBadRequest, rec.Code, target)
		rq.Contains(rec.Body.String(), "InvalidPaging")
	}
}

func TestPostV1Monitor(t *testing.T) {
	rq := require.New(t)

	monitor := &fakeMonitor{active: true}
	router := newTestRouter(monitor, &fakeArchive{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost, "/v1/monitor", strings.NewReader(`{"active":false}`),
	))

	rq.Equal(http.StatusOK, rec.Code)
	rq.False(monitor.active)

	// Пустое тело не проходит валидацию.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost, "/v1/monitor", strings.NewReader(`{}`),
	))

	rq.Equal(http.StatusBadRequest, rec.Code)
}
