package handler

import (
	"context"

	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/internal/worker"
)

type Monitor interface {
	Stats() worker.Stats
	Pause()
	Resume()
}

type GiftArchive interface {
	List(ctx context.Context, limit, offset int) ([]entity.ArchivedGift, error)
}

type Handler struct {
	monitor Monitor
	archive GiftArchive
}

func New(monitor Monitor, archive GiftArchive) *Handler {
	return &Handler{
		monitor: monitor,
		archive: archive,
	}
}
