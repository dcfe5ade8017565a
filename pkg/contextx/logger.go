package contextx

import (
	"context"
	"fmt"
	"log/slog"
)

type contextKeyLogger struct{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger{}, logger)
}

func LoggerFromContext(ctx context.Context) (*slog.Logger, error) {
	logger, ok := ctx.Value(contextKeyLogger{}).(*slog.Logger)
	if !ok {
		return nil, fmt.Errorf("logger: %w", ErrNoValue)
	}

	return logger, nil
}

// LoggerFromContextOrDefault возвращает логгер из контекста либо
// логгер по умолчанию, если в контексте его нет.
func LoggerFromContextOrDefault(ctx context.Context) *slog.Logger {
	if logger, err := LoggerFromContext(ctx); err == nil {
		return logger
	}

	return slog.Default()
}
