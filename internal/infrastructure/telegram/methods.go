package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/gotd/td/tg"
	"github.com/samber/lo"

	"tg_giftwatch/internal/domain/entity"
)

const requestTimeout = 15 * time.Second

// GetStarGifts запрашивает каталог звёздных подарков.
// hash — непрозрачный токен из предыдущего ответа, 0 для первого запроса.
func (c *Client) GetStarGifts(ctx context.Context, hash int) (entity.GiftCatalog, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resRaw, err := c.api.PaymentsGetStarGifts(ctx, hash)
	if err != nil {
		return entity.GiftCatalog{}, fmt.Errorf("failed to fetch star gifts: %w", err)
	}

	switch res := resRaw.(type) {
	case *tg.PaymentsStarGifts:
		return entity.GiftCatalog{
			Hash:  res.Hash,
			Gifts: parseGifts(res.Gifts),
		}, nil
	case *tg.PaymentsStarGiftsNotModified:
		return entity.GiftCatalog{Hash: hash, NotModified: true}, nil
	default:
		return entity.GiftCatalog{}, fmt.Errorf("unexpected response type: %T", resRaw)
	}
}

func parseGifts(raw []tg.StarGiftClass) []entity.Gift {
	result := make([]entity.Gift, 0, len(raw))

	for _, gRaw := range raw {
		g, ok := gRaw.(*tg.StarGift)
		if !ok {
			continue
		}

		result = append(result, parseGift(g))
	}

	return result
}

// parseGift проецирует сырой StarGift с подстановкой значений по умолчанию
// для опциональных полей.
func parseGift(g *tg.StarGift) entity.Gift {
	gift := entity.Gift{
		Title:          entity.TitleUnknown,
		ID:             g.ID,
		Stars:          g.Stars,
		Limited:        g.Limited,
		SoldOut:        g.SoldOut,
		RequirePremium: g.RequirePremium,
	}

	if g.Title != "" {
		gift.Title = g.Title
	}

	if _, ok := g.GetUpgradeStars(); ok {
		gift.CanUpgrade = true
	}

	if remains, ok := g.GetAvailabilityRemains(); ok {
		gift.AvailabilityRemains = lo.ToPtr(remains)
	}

	if total, ok := g.GetAvailabilityTotal(); ok {
		gift.AvailabilityTotal = lo.ToPtr(total)
	}

	return gift
}
