package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/internal/worker"
	"tg_giftwatch/pkg/errcodes"
	"tg_giftwatch/pkg/httpx/reply"
	"tg_giftwatch/pkg/httpx/req"
	"tg_giftwatch/pkg/rest"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type monitorControl interface {
	Stats() worker.Stats
	SetActive(active bool) bool
}

type giftArchive interface {
	List(ctx context.Context, limit, offset int) ([]entity.ArchivedGift, error)
}

type GiftServer struct {
	monitor monitorControl
	archive giftArchive
}

func NewGiftServer(monitor monitorControl, archive giftArchive) GiftServer {
	return GiftServer{
		monitor: monitor,
		archive: archive,
	}
}

func (s GiftServer) getV1Status(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTMonitorStatus(s.monitor.Stats()))

	return nil
}

func (s GiftServer) getV1Gifts(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, offset, err := paging(r)
	if err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("paging: %w", err),
			failure.WithCode(errcodes.InvalidPaging),
		)
	}

	gifts, err := s.archive.List(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("archive.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTGifts(gifts))

	return nil
}

func (s GiftServer) postV1Monitor(w http.ResponseWriter, r *http.Request) error {
	var request rest.MonitorToggle

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	s.monitor.SetActive(*request.Active)

	reply.OK(w)

	return nil
}

func paging(r *http.Request) (limit, offset int, err error) {
	limit = defaultListLimit

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit <= 0 || limit > maxListLimit {
			return 0, 0, fmt.Errorf("invalid limit %q", v)
		}
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", v)
		}
	}

	return limit, offset, nil
}
