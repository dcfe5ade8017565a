package worker

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"

	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/pkg/contextx"
	"tg_giftwatch/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// CatalogClient — авторизованная MTProto-сессия. Весь транспорт,
// шифрование и реконнекты — её забота.
type CatalogClient interface {
	Ready() bool
	GetStarGifts(ctx context.Context, hash int) (entity.GiftCatalog, error)
}

type FeedWriter interface {
	Append(event entity.FeedEvent) error
}

type GiftArchive interface {
	Upsert(ctx context.Context, gift entity.Gift) error
}

// Stats — снимок состояния монитора для бота и HTTP API.
type Stats struct {
	Active         bool  `json:"active"`
	Primed         bool  `json:"primed"`
	LastHash       int   `json:"last_hash"`
	Polls          int64 `json:"polls"`
	PollFailures   int64 `json:"poll_failures"`
	EmittedEvents  int64 `json:"emitted_events"`
	KnownGifts     int   `json:"known_gifts"`
	LimitedGifts   int   `json:"limited_gifts"`
	AvailableGifts int   `json:"available_gifts"`
}

// GiftMonitor опрашивает каталог подарков по фиксированному интервалу
// и дописывает непроданные позиции в фид.
//
// Первый успешный опрос — только прайминг: запоминается hash, ничего
// не эмитится. Дальше hash безусловно обновляется из каждого полного
// ответа, а каждая непроданная позиция уходит в фид событием "new".
// Повторный emit уже виденных позиций — документированное буквальное
// поведение; режим dedup включает фильтрацию по виденным ID и события
// "updated" при изменении отслеживаемых полей.
//
// Политика тиков: активен максимум один опрос; тик, пришедший во время
// долгого опроса, схлопывается, т.к. канал тикера читается только между
// опросами.
type GiftMonitor struct {
	client   CatalogClient
	feed     FeedWriter
	interval time.Duration

	archive GiftArchive        // опционально
	alerts  chan<- entity.Gift // опционально

	dedup bool
	seen  *cache.Cache

	// lastHash и primed трогает только цикл опроса; мьютекс нужен из-за
	// читателей Stats и переключателя active (бот и HTTP).
	mu       sync.Mutex
	lastHash int
	primed   bool
	active   bool
	stats    Stats
}

func NewGiftMonitor(client CatalogClient, feed FeedWriter, interval time.Duration) *GiftMonitor {
	return &GiftMonitor{
		client:   client,
		feed:     feed,
		interval: interval,
		active:   true,
		seen:     cache.New(cache.NoExpiration, 0),
	}
}

// WithArchive включает сохранение обнаруженных подарков в архив.
// Ошибки архива не фатальны: фид остаётся источником истины.
func (m *GiftMonitor) WithArchive(archive GiftArchive) *GiftMonitor {
	m.archive = archive
	return m
}

// WithAlerts включает отправку эмитнутых подарков в канал алертов.
func (m *GiftMonitor) WithAlerts(alerts chan<- entity.Gift) *GiftMonitor {
	m.alerts = alerts
	return m
}

// WithDedup переключает монитор на семантику "только новое":
// виденные ID не переэмитятся, изменения отслеживаемых полей
// уходят событием "updated".
func (m *GiftMonitor) WithDedup(enabled bool) *GiftMonitor {
	m.dedup = enabled
	return m
}

// Run крутит цикл опроса до отмены контекста. Первый опрос выполняется
// сразу, не дожидаясь первого тика.
func (m *GiftMonitor) Run(ctx context.Context) error {
	logger(ctx).Info("gift monitor started",
		slog.Duration("interval", m.interval),
		slog.Bool("dedup", m.dedup),
	)

	m.Poll(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("gift monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.Poll(ctx)
		}
	}
}

// Pause приостанавливает эмит: тики продолжают идти, но опрос не выполняется.
func (m *GiftMonitor) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = false
}

// Resume возобновляет опрос.
func (m *GiftMonitor) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = true
}

// SetActive переключает состояние и возвращает предыдущее.
func (m *GiftMonitor) SetActive(active bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	was := m.active
	m.active = active
	return was
}

func (m *GiftMonitor) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Stats возвращает снимок состояния.
func (m *GiftMonitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.stats
	stats.Active = m.active
	stats.Primed = m.primed
	stats.LastHash = m.lastHash

	return stats
}

// Poll выполняет один цикл опроса. Вызывается циклом Run, но открыт
// для прямого вызова из тестов и ручного триггера.
func (m *GiftMonitor) Poll(ctx context.Context) {
	if !m.IsActive() {
		return
	}

	if !m.client.Ready() {
		metricPollsTotal.WithLabelValues(pollStatusSkipped).Inc()
		logger(ctx).Debug("session not ready, poll skipped")
		return
	}

	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldTraceID, xid.New().String()),
	))

	m.mu.Lock()
	lastHash := m.lastHash
	m.mu.Unlock()

	catalog, err := m.client.GetStarGifts(ctx, lastHash)
	if err != nil {
		// Ошибка гасится внутри тика: hash не трогаем, ретраим
		// не раньше следующего тика.
		metricPollsTotal.WithLabelValues(pollStatusError).Inc()
		m.countPoll(true)
		logger(ctx).Error("fetch star gifts", logx.Error(err))
		return
	}

	if catalog.NotModified {
		metricPollsTotal.WithLabelValues(pollStatusNotModified).Inc()
		m.countPoll(false)
		return
	}

	metricPollsTotal.WithLabelValues(pollStatusOK).Inc()
	m.countPoll(false)

	if m.prime(ctx, catalog) {
		return
	}

	m.mu.Lock()
	m.lastHash = catalog.Hash
	m.snapshotCounts(catalog)
	m.mu.Unlock()

	var emitted int

	for _, gift := range catalog.Gifts {
		if gift.SoldOut {
			m.remember(gift)
			continue
		}

		event, ok := m.classify(gift)
		m.remember(gift)
		if !ok {
			continue
		}

		m.emit(ctx, event, gift)
		emitted++
	}

	if emitted > 0 {
		logger(ctx).Info("feed events appended",
			slog.Int("count", emitted),
			slog.Int(logx.FieldPollHash, catalog.Hash),
		)
	}
}

// prime обрабатывает первый успешный опрос: фиксирует hash и текущий
// каталог, ничего не эмитя.
func (m *GiftMonitor) prime(ctx context.Context, catalog entity.GiftCatalog) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.primed {
		return false
	}

	m.primed = true
	m.lastHash = catalog.Hash
	m.snapshotCounts(catalog)

	for _, gift := range catalog.Gifts {
		m.seen.Set(seenKey(gift.ID), gift, cache.DefaultExpiration)
	}

	logger(ctx).Info("catalog primed",
		slog.Int("gifts", len(catalog.Gifts)),
		slog.Int(logx.FieldPollHash, catalog.Hash),
	)

	return true
}

// classify решает, эмитить ли подарок и каким событием.
func (m *GiftMonitor) classify(gift entity.Gift) (string, bool) {
	if !m.dedup {
		return entity.FeedEventNew, true
	}

	prevRaw, found := m.seen.Get(seenKey(gift.ID))
	if !found {
		return entity.FeedEventNew, true
	}

	prev, ok := prevRaw.(entity.Gift)
	if ok && giftChanged(prev, gift) {
		return entity.FeedEventUpdated, true
	}

	return "", false
}

func (m *GiftMonitor) remember(gift entity.Gift) {
	if !m.dedup {
		return
	}

	m.seen.Set(seenKey(gift.ID), gift, cache.DefaultExpiration)
}

func (m *GiftMonitor) emit(ctx context.Context, event string, gift entity.Gift) {
	if err := m.feed.Append(entity.FeedEvent{Event: event, Gift: gift}); err != nil {
		metricFeedWriteErrorsTotal.Inc()
		logger(ctx).Error("feed append",
			slog.Int64(logx.FieldGiftID, gift.ID),
			logx.Error(err),
		)
		return
	}

	metricFeedEventsTotal.WithLabelValues(event).Inc()

	m.mu.Lock()
	m.stats.EmittedEvents++
	m.mu.Unlock()

	if m.archive != nil {
		if err := m.archive.Upsert(ctx, gift); err != nil {
			logger(ctx).Error("archive upsert",
				slog.Int64(logx.FieldGiftID, gift.ID),
				logx.Error(err),
			)
		}
	}

	if m.alerts != nil {
		select {
		case m.alerts <- gift:
		case <-ctx.Done():
		}
	}
}

func (m *GiftMonitor) countPoll(failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Polls++
	if failed {
		m.stats.PollFailures++
	}
}

// snapshotCounts пересчитывает статистику каталога. Вызывается под m.mu.
func (m *GiftMonitor) snapshotCounts(catalog entity.GiftCatalog) {
	m.stats.KnownGifts = len(catalog.Gifts)
	m.stats.LimitedGifts = 0
	m.stats.AvailableGifts = 0

	for _, gift := range catalog.Gifts {
		if gift.Limited {
			m.stats.LimitedGifts++
		}
		if !gift.SoldOut {
			m.stats.AvailableGifts++
		}
	}
}

// giftChanged сравнивает отслеживаемые поля: sold_out, остаток, цена.
func giftChanged(prev, next entity.Gift) bool {
	if prev.SoldOut != next.SoldOut || prev.Stars != next.Stars {
		return true
	}

	return !equalIntPtr(prev.AvailabilityRemains, next.AvailabilityRemains)
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func seenKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
