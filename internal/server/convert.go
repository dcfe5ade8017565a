package server

import (
	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/internal/worker"
	"tg_giftwatch/pkg/rest"
)

func newRESTMonitorStatus(stats worker.Stats) rest.MonitorStatus {
	return rest.MonitorStatus{
		Active:         stats.Active,
		Primed:         stats.Primed,
		LastHash:       stats.LastHash,
		Polls:          stats.Polls,
		PollFailures:   stats.PollFailures,
		EmittedEvents:  stats.EmittedEvents,
		KnownGifts:     stats.KnownGifts,
		LimitedGifts:   stats.LimitedGifts,
		AvailableGifts: stats.AvailableGifts,
	}
}

func newRESTGifts(gifts []entity.ArchivedGift) []rest.Gift {
	result := make([]rest.Gift, 0, len(gifts))

	for _, g := range gifts {
		result = append(result, rest.Gift{
			ID:                  g.ID,
			Title:               g.Title,
			Stars:               g.Stars,
			Limited:             g.Limited,
			SoldOut:             g.SoldOut,
			RequirePremium:      g.RequirePremium,
			CanUpgrade:          g.CanUpgrade,
			AvailabilityRemains: g.AvailabilityRemains,
			AvailabilityTotal:   g.AvailabilityTotal,
			DiscoveredAt:        g.DiscoveredAt,
		})
	}

	return result
}
