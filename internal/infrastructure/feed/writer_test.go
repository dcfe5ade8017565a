package feed_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/internal/infrastructure/feed"
)

func TestWriterAppend(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "data", "gifts_feed.jsonl")

	w, err := feed.NewWriter(path)
	rq.NoError(err)
	rq.Equal(path, w.Path())

	rq.NoError(w.Append(entity.FeedEvent{
		Event: entity.FeedEventNew,
		Gift: entity.Gift{
			ID:      5170233102089322756,
			Title:   entity.TitleUnknown,
			Stars:   100,
			Limited: true,
		},
	}))

	rq.NoError(w.Append(entity.FeedEvent{
		Event: entity.FeedEventNew,
		Gift: entity.Gift{
			ID:                  42,
			Title:               "Plush Pepe </&>",
			Stars:               2500,
			Limited:             true,
			RequirePremium:      true,
			CanUpgrade:          true,
			AvailabilityRemains: lo.ToPtr(7),
			AvailabilityTotal:   lo.ToPtr(3000),
		},
	}))

	raw, err := os.ReadFile(path)
	rq.NoError(err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	rq.Len(lines, 2)

	// Каждая строка — самостоятельный валидный JSON фиксированной схемы.
	for _, line := range lines {
		rq.NotContains(line, "\n")

		var envelope entity.FeedEvent
		rq.NoError(json.Unmarshal([]byte(line), &envelope))
		rq.Equal(entity.FeedEventNew, envelope.Event)
	}

	rq.JSONEq(
		`{"event":"new","gift":{"id":5170233102089322756,"title":"NONE","stars":100,"limited":true,"sold_out":false,"require_premium":false,"can_upgrade":false,"availability_remains":null,"availability_total":null}}`,
		lines[0],
	)

	// HTML-символы не экранируются.
	rq.Contains(lines[1], `"Plush Pepe </&>"`)
	rq.NotContains(lines[1], `\u003c`)
}

func TestWriterAppendOnly(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "gifts_feed.jsonl")

	w, err := feed.NewWriter(path)
	rq.NoError(err)

	for i := range 3 {
		rq.NoError(w.Append(entity.FeedEvent{
			Event: entity.FeedEventNew,
			Gift:  entity.Gift{ID: int64(i)},
		}))
	}

	raw, err := os.ReadFile(path)
	rq.NoError(err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	rq.Len(lines, 3)

	// Повторная запись того же ID дописывает новую строку, а не перезаписывает.
	rq.NoError(w.Append(entity.FeedEvent{
		Event: entity.FeedEventNew,
		Gift:  entity.Gift{ID: 0},
	}))

	raw, err = os.ReadFile(path)
	rq.NoError(err)
	rq.Len(strings.Split(strings.TrimRight(string(raw), "\n"), "\n"), 4)
}

func TestNewWriterCreatesDir(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "a", "b", "feed.jsonl")

	_, err := feed.NewWriter(path)
	rq.NoError(err)

	_, err = os.Stat(filepath.Dir(path))
	rq.NoError(err)
}
