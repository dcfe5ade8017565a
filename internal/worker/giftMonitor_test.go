package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/internal/infrastructure/feed"
	"tg_giftwatch/internal/worker"
)

type catalogStep struct {
	catalog entity.GiftCatalog
	err     error
}

type fakeClient struct {
	ready   bool
	steps   []catalogStep
	call    int
	gotHash []int
}

func (c *fakeClient) Ready() bool {
	return c.ready
}

func (c *fakeClient) GetStarGifts(_ context.Context, hash int) (entity.GiftCatalog, error) {
	c.gotHash = append(c.gotHash, hash)

	step := c.steps[c.call]
	if c.call < len(c.steps)-1 {
		c.call++
	}

	return step.catalog, step.err
}

type fakeArchive struct {
	upserts []entity.Gift
}

func (a *fakeArchive) Upsert(_ context.Context, gift entity.Gift) error {
	a.upserts = append(a.upserts, gift)
	return nil
}

func readFeed(t *testing.T, path string) []entity.FeedEvent {
	t.Helper()

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)

	var events []entity.FeedEvent

	for _, line := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
		if line == "" {
			continue
		}

		var event entity.FeedEvent
		require.NoError(t, json.Unmarshal([]byte(line), &event))
		events = append(events, event)
	}

	return events
}

func newFeedWriter(t *testing.T) (*feed.Writer, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gifts_feed.jsonl")

	w, err := feed.NewWriter(path)
	require.NoError(t, err)

	return w, path
}

func unsoldGift(id int64, stars int64) entity.Gift {
	return entity.Gift{
		ID:      id,
		Title:   "Delicious Cake",
		Stars:   stars,
		Limited: true,
	}
}

func TestMonitorPrimingAndReEmit(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	soldOut := unsoldGift(3, 50)
	soldOut.SoldOut = true

	client := &fakeClient{
		ready: true,
		steps: []catalogStep{
			{catalog: entity.GiftCatalog{Hash: 5, Gifts: []entity.Gift{unsoldGift(1, 100), unsoldGift(2, 250)}}},
			{catalog: entity.GiftCatalog{Hash: 9, Gifts: []entity.Gift{unsoldGift(1, 100), unsoldGift(2, 250), soldOut}}},
		},
	}

	w, path := newFeedWriter(t)
	archive := &fakeArchive{}

	m := worker.NewGiftMonitor(client, w, time.Second).WithArchive(archive)

	// Первый опрос — только прайминг.
	m.Poll(ctx)

	rq.Empty(readFeed(t, path))

	stats := m.Stats()
	rq.True(stats.Primed)
	rq.Equal(5, stats.LastHash)
	rq.Equal(int64(1), stats.Polls)
	rq.Equal(2, stats.KnownGifts)

	// Второй опрос: ровно две строки, sold out исключён.
	m.Poll(ctx)

	events := readFeed(t, path)
	rq.Len(events, 2)
	for _, e := range events {
		rq.Equal(entity.FeedEventNew, e.Event)
		rq.False(e.Gift.SoldOut)
	}

	stats = m.Stats()
	rq.Equal(9, stats.LastHash)
	rq.Equal(3, stats.KnownGifts)
	rq.Equal(2, stats.AvailableGifts)
	rq.Equal(int64(2), stats.EmittedEvents)

	// Буквальное поведение: те же непроданные позиции переэмитятся.
	m.Poll(ctx)
	rq.Len(readFeed(t, path), 4)

	// hash из предыдущего ответа уходит в следующий запрос.
	rq.Equal([]int{0, 5, 9}, client.gotHash)

	rq.Len(archive.upserts, 4)
}

func TestMonitorPollError(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client := &fakeClient{
		ready: true,
		steps: []catalogStep{
			{catalog: entity.GiftCatalog{Hash: 5, Gifts: []entity.Gift{unsoldGift(1, 100)}}},
			{err: errors.New("rpc: connection dead")},
		},
	}

	w, path := newFeedWriter(t)
	m := worker.NewGiftMonitor(client, w, time.Second)

	m.Poll(ctx)
	m.Poll(ctx)

	rq.Empty(readFeed(t, path))

	stats := m.Stats()
	rq.Equal(5, stats.LastHash)
	rq.Equal(int64(2), stats.Polls)
	rq.Equal(int64(1), stats.PollFailures)
}

func TestMonitorNotModified(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client := &fakeClient{
		ready: true,
		steps: []catalogStep{
			{catalog: entity.GiftCatalog{Hash: 5, Gifts: []entity.Gift{unsoldGift(1, 100)}}},
			{catalog: entity.GiftCatalog{Hash: 5, NotModified: true}},
		},
	}

	w, path := newFeedWriter(t)
	m := worker.NewGiftMonitor(client, w, time.Second)

	m.Poll(ctx)
	m.Poll(ctx)

	rq.Empty(readFeed(t, path))
	rq.Equal(5, m.Stats().LastHash)
}

func TestMonitorSessionNotReady(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client := &fakeClient{
		ready: false,
		steps: []catalogStep{{catalog: entity.GiftCatalog{Hash: 5}}},
	}

	w, path := newFeedWriter(t)
	m := worker.NewGiftMonitor(client, w, time.Second)

	m.Poll(ctx)

	rq.Empty(readFeed(t, path))
	rq.Empty(client.gotHash)
	rq.False(m.Stats().Primed)
}

func TestMonitorDedup(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repriced := unsoldGift(1, 100)
	repriced.Stars = 150

	client := &fakeClient{
		ready: true,
		steps: []catalogStep{
			{catalog: entity.GiftCatalog{Hash: 5, Gifts: []entity.Gift{unsoldGift(1, 100)}}},
			{catalog: entity.GiftCatalog{Hash: 9, Gifts: []entity.Gift{unsoldGift(1, 100), unsoldGift(2, 250)}}},
			{catalog: entity.GiftCatalog{Hash: 12, Gifts: []entity.Gift{repriced, unsoldGift(2, 250)}}},
		},
	}

	w, path := newFeedWriter(t)
	m := worker.NewGiftMonitor(client, w, time.Second).WithDedup(true)

	m.Poll(ctx)
	rq.Empty(readFeed(t, path))

	// Виденный на прайминге ID не эмитится, новый — эмитится один раз.
	m.Poll(ctx)

	events := readFeed(t, path)
	rq.Len(events, 1)
	rq.Equal(entity.FeedEventNew, events[0].Event)
	rq.Equal(int64(2), events[0].Gift.ID)

	// Изменение цены у виденного подарка — событие updated.
	m.Poll(ctx)

	events = readFeed(t, path)
	rq.Len(events, 2)
	rq.Equal(entity.FeedEventUpdated, events[1].Event)
	rq.Equal(int64(1), events[1].Gift.ID)
	rq.Equal(int64(150), events[1].Gift.Stars)
}

func TestMonitorPauseResume(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client := &fakeClient{
		ready: true,
		steps: []catalogStep{
			{catalog: entity.GiftCatalog{Hash: 5, Gifts: []entity.Gift{unsoldGift(1, 100)}}},
			{catalog: entity.GiftCatalog{Hash: 9, Gifts: []entity.Gift{unsoldGift(1, 100)}}},
		},
	}

	w, path := newFeedWriter(t)
	m := worker.NewGiftMonitor(client, w, time.Second)

	m.Poll(ctx)

	m.Pause()
	rq.False(m.IsActive())

	m.Poll(ctx)
	rq.Empty(readFeed(t, path))
	rq.Equal([]int{0}, client.gotHash)

	m.Resume()
	m.Poll(ctx)
	rq.Len(readFeed(t, path), 1)
	rq.Equal([]int{0, 5}, client.gotHash)
}

func TestMonitorAlertsChannel(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client := &fakeClient{
		ready: true,
		steps: []catalogStep{
			{catalog: entity.GiftCatalog{Hash: 5, Gifts: nil}},
			{catalog: entity.GiftCatalog{Hash: 9, Gifts: []entity.Gift{unsoldGift(7, 500)}}},
		},
	}

	w, _ := newFeedWriter(t)
	alerts := make(chan entity.Gift, 1)

	m := worker.NewGiftMonitor(client, w, time.Second).WithAlerts(alerts)

	m.Poll(ctx)
	m.Poll(ctx)

	gift := <-alerts
	rq.Equal(int64(7), gift.ID)
	rq.Equal(int64(500), gift.Stars)
}
