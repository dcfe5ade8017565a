package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/pkg/contextx"
	"tg_giftwatch/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run обрабатывает обнаруженные подарки из канала до его закрытия.
func (b *TelegramBot) Run(ctx context.Context, gifts <-chan entity.Gift) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gift, ok := <-gifts:
			if !ok {
				return nil
			}
			if !shouldNotify(gift) {
				continue
			}
			if err := b.SendGift(ctx, gift); err != nil {
				logger(ctx).Error("failed to send gift alert", logx.Error(err))
			}
		}
	}
}

// SendGift отправляет алерт о подарке.
func (b *TelegramBot) SendGift(ctx context.Context, gift entity.Gift) error {
	text := fmt.Sprintf(
		"🎁 <b>NEW GIFT!</b>\n\n"+
			"📝 <b>Name:</b> %s\n"+
			"🆔 <b>ID:</b> <code>%d</code>\n"+
			"🌟 <b>Price:</b> %d ⭐\n"+
			"💎 <b>Premium only:</b> %s\n"+
			"♻️ <b>Upgradeable:</b> %s%s",
		gift.Title,
		gift.ID,
		gift.Stars,
		boolMark(gift.RequirePremium),
		boolMark(gift.CanUpgrade),
		availabilityLine(gift),
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	_, err := b.bot.SendMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText отправляет простое текстовое сообщение.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}

// shouldNotify — алерты только по лимитированным, непроданным и платным.
func shouldNotify(gift entity.Gift) bool {
	return gift.Limited && !gift.SoldOut && gift.Stars > 0
}

func availabilityLine(gift entity.Gift) string {
	if gift.AvailabilityRemains == nil || gift.AvailabilityTotal == nil || *gift.AvailabilityTotal == 0 {
		return ""
	}

	percent := float64(*gift.AvailabilityRemains) / float64(*gift.AvailabilityTotal) * 100

	return fmt.Sprintf(
		"\n📊 <b>Left:</b> %d/%d (%.1f%%)",
		*gift.AvailabilityRemains,
		*gift.AvailabilityTotal,
		percent,
	)
}

func boolMark(b bool) string {
	if b {
		return "✅"
	}
	return "❌"
}
