package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tg_giftwatch/pkg/contextx"
)

func TestTraceID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	traceID, err := contextx.TraceIDFromContext(ctx)
	rq.Equal(contextx.TraceID(""), traceID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "trace id: no value in context")

	ctx = contextx.WithTraceID(ctx, contextx.TraceID("test-trace-id"))

	traceID, err = contextx.TraceIDFromContext(ctx)
	rq.Equal(contextx.TraceID("test-trace-id"), traceID)
	rq.NoError(err)
	rq.Equal("test-trace-id", traceID.String())
}
