package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_giftwatch/internal/transport/bot/view"
)

const recentLimit = 10

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	stats := h.monitor.Stats()

	monitorStatus := "🔴 на паузе"
	if stats.Active {
		monitorStatus = "🟢 работает"
	}

	primed := "ещё нет"
	if stats.Primed {
		primed = fmt.Sprintf("hash=%d", stats.LastHash)
	}

	text := fmt.Sprintf(`📊 <b>Статус системы</b>

🔍 <b>Монитор:</b> %s
#️⃣ <b>Прайминг:</b> %s
🔄 <b>Опросов:</b> %d (ошибок: %d)
📤 <b>Событий в фиде:</b> %d
🎁 <b>В каталоге:</b> %d (лимитированных: %d, доступных: %d)`,
		monitorStatus,
		primed,
		stats.Polls,
		stats.PollFailures,
		stats.EmittedEvents,
		stats.KnownGifts,
		stats.LimitedGifts,
		stats.AvailableGifts,
	)

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnPause(ctx *th.Context, msg telego.Message) error {
	h.monitor.Pause()
	return h.sendText(ctx, msg.Chat.ID, view.MonitorPaused)
}

func (h *Handler) OnResume(ctx *th.Context, msg telego.Message) error {
	h.monitor.Resume()
	return h.sendText(ctx, msg.Chat.ID, view.MonitorResumed)
}

func (h *Handler) OnRecent(ctx *th.Context, msg telego.Message) error {
	gifts, err := h.archive.List(ctx, recentLimit, 0)
	if err != nil {
		return fmt.Errorf("archive list: %w", err)
	}

	if len(gifts) == 0 {
		return h.sendText(ctx, msg.Chat.ID, view.RecentEmpty)
	}

	var sb strings.Builder
	sb.WriteString("🕐 <b>Последние находки</b>\n")

	for _, g := range gifts {
		fmt.Fprintf(&sb, "\n• %s — %d ⭐ (<code>%d</code>)", g.Title, g.Stars, g.ID)
		if g.SoldOut {
			sb.WriteString(" 🔴 sold out")
		}
	}

	return h.sendHTML(ctx, msg.Chat.ID, sb.String())
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}

func (h *Handler) sendText(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})
	return err
}
