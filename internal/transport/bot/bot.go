package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_giftwatch/internal/transport/bot/handler"
	"tg_giftwatch/pkg/contextx"
	"tg_giftwatch/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Bot — управляющий Telegram-бот: статус и пауза/возобновление монитора,
// последние находки из архива. Доступ только для администратора.
type Bot struct {
	bot        *telego.Bot
	botHandler *th.BotHandler

	handler *handler.Handler
}

func New(
	token string,
	adminID int64,
	monitor handler.Monitor,
	archive handler.GiftArchive,
) (*Bot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	updates, err := bot.UpdatesViaLongPolling(context.Background(), &telego.GetUpdatesParams{
		Timeout: 60,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get updates: %w", err)
	}

	botHandler, err := th.NewBotHandler(bot, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot handler: %w", err)
	}

	commandHandler := handler.New(monitor, archive)
	commandHandler.RegisterRoutes(botHandler, adminID)

	return &Bot{
		bot:        bot,
		botHandler: botHandler,
		handler:    commandHandler,
	}, nil
}

// Run запускает обработку обновлений до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		if err := b.botHandler.Start(); err != nil {
			logger(ctx).Error("failed to start bot handler", logx.Error(err))
		}
	}()

	<-ctx.Done()

	if err := b.botHandler.Stop(); err != nil {
		logger(ctx).Error("failed to stop bot handler", logx.Error(err))
	}

	return ctx.Err()
}
