package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger, err := New(&Config{Level: "debug", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	ctx := context.Background()
	ctxWithLogger := WithContext(ctx, logger)

	retrievedLogger := FromContext(ctxWithLogger)
	assert.NotNil(t, retrievedLogger)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	// Should return a no-op logger
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger, err := New(&Config{Level: "debug", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Equal(t, "", GetTraceID(context.Background()))
	assert.Equal(t, "", GetSpanID(context.Background()))
}

func TestWithTraceContext_NoSpanReturnsSameLogger(t *testing.T) {
	logger := zap.NewNop()
	enriched := WithTraceContext(context.Background(), logger)
	assert.Equal(t, logger, enriched)
}

// newCapturingLogger returns a JSON logger writing into buf
func newCapturingLogger(buf *bytes.Buffer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestContextLogger_InjectsRequestID(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newCapturingLogger(&buf)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, baseLogger, "req-abc")

	L(ctx).Info("doing work")

	output := buf.String()
	assert.Contains(t, output, "doing work")
	assert.Contains(t, output, `"request_id":"req-abc"`)
}

func TestContextLogger_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newCapturingLogger(&buf)

	WithLogger(context.Background(), baseLogger).Warn("low stock")

	assert.Contains(t, buf.String(), "low stock")
}

func TestContextLogger_With(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newCapturingLogger(&buf)

	cl := WithLogger(context.Background(), baseLogger).With(zap.String("invoice_number", "INV-1"))
	cl.Info("payment applied")

	output := buf.String()
	assert.Contains(t, output, `"invoice_number":"INV-1"`)
}

func TestContextLogger_NilLoggerFallsBackToNop(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	assert.NotPanics(t, func() {
		cl.Info("ignored")
		cl.Debug("ignored")
		cl.Error("ignored")
	})
}

func TestContextLogger_Zap(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newCapturingLogger(&buf)

	z := WithLogger(context.Background(), baseLogger).Zap()
	require.NotNil(t, z)
	z.Info("direct zap")
	assert.Contains(t, buf.String(), "direct zap")
}
