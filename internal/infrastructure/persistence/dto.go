package persistence

import (
	"time"

	"tg_giftwatch/internal/domain/entity"
)

type giftSchema struct {
	ID                  int64     `db:"id"`
	Title               string    `db:"title"`
	Stars               int64     `db:"stars"`
	Limited             bool      `db:"limited"`
	SoldOut             bool      `db:"sold_out"`
	RequirePremium      bool      `db:"require_premium"`
	CanUpgrade          bool      `db:"can_upgrade"`
	AvailabilityRemains *int      `db:"availability_remains"`
	AvailabilityTotal   *int      `db:"availability_total"`
	DiscoveredAt        time.Time `db:"discovered_at"`
}

func (s giftSchema) toDomain() entity.ArchivedGift {
	return entity.ArchivedGift{
		Gift: entity.Gift{
			ID:                  s.ID,
			Title:               s.Title,
			Stars:               s.Stars,
			Limited:             s.Limited,
			SoldOut:             s.SoldOut,
			RequirePremium:      s.RequirePremium,
			CanUpgrade:          s.CanUpgrade,
			AvailabilityRemains: s.AvailabilityRemains,
			AvailabilityTotal:   s.AvailabilityTotal,
		},
		DiscoveredAt: s.DiscoveredAt,
	}
}
