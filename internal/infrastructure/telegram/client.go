package telegram

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"tg_giftwatch/internal/config"
	"tg_giftwatch/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ConsoleInput реализует ввод кода подтверждения с клавиатуры.
type ConsoleInput struct{}

func (c ConsoleInput) Code(ctx context.Context, sentCode *tg.AuthSentCode) (string, error) {
	fmt.Print("Введите код из Telegram: ")
	text, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

type Client struct {
	client *telegram.Client
	api    *tg.Client
	ready  atomic.Bool

	phone    string
	password string
}

func NewClient(cfg config.Telegram) (*Client, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SessionPath), 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	opts := telegram.Options{
		SessionStorage: &telegram.FileSessionStorage{Path: cfg.SessionPath},
		Logger:         zap.NewNop(),
		Device: telegram.DeviceConfig{
			DeviceModel:   cfg.DeviceModel,
			SystemVersion: cfg.SystemVersion,
			AppVersion:    cfg.AppVersion,
		},
	}

	client := telegram.NewClient(cfg.ApiID, cfg.ApiHash, opts)

	return &Client{
		client:   client,
		api:      client.API(),
		phone:    cfg.Phone,
		password: cfg.Password,
	}, nil
}

// Start поднимает соединение и держит его открытым до отмены контекста.
func (c *Client) Start(ctx context.Context, onReady func() error) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		status, err := c.client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("auth status error: %w", err)
		}

		if !status.Authorized {
			logger(ctx).Info("user not authorized, starting login flow...")
			if err := c.authenticate(ctx); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			logger(ctx).Info("authentication successful")
		} else {
			logger(ctx).Info("user already authorized")
		}

		c.ready.Store(true)
		defer c.ready.Store(false)

		// Сигнализируем наверх, что сессия установлена и авторизована.
		if onReady != nil {
			if err := onReady(); err != nil {
				return err
			}
		}

		<-ctx.Done()
		return ctx.Err()
	})
}

// Ready сообщает, установлена ли авторизованная сессия.
func (c *Client) Ready() bool {
	return c.ready.Load()
}

func (c *Client) authenticate(ctx context.Context) error {
	userAuth := auth.Constant(
		c.phone,
		c.password,
		ConsoleInput{},
	)

	flow := auth.NewFlow(
		userAuth,
		auth.SendCodeOptions{},
	)

	return c.client.Auth().IfNecessary(ctx, flow)
}
