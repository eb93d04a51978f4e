package observability_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmike/mpo/pkg/mpo/observability"
)

func newCapturingLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := newCapturingLogger()

	enriched := observability.EnrichLogger(logger, "Ping::output", "Pong::input", "lnk-1234")
	require.NotNil(t, enriched)
	enriched.Debug("dispatching")

	out := buf.String()
	assert.Contains(t, out, "signal=Ping::output")
	assert.Contains(t, out, "slot=Pong::input")
	assert.Contains(t, out, "link_id=lnk-1234")
}

func TestEnrichLoggerNil(t *testing.T) {
	assert.Nil(t, observability.EnrichLogger(nil, "a", "b", "c"))
}

func TestLogHelpers(t *testing.T) {
	logger, buf := newCapturingLogger()

	observability.LogConnect(logger, "Ping::output", "Pong::input", "lnk-1", "static")
	observability.LogDisconnect(logger, "Ping::output", "Pong::input", "lnk-1", 2)
	observability.LogEmit(logger, "Ping::output", "Ball", 1)
	observability.LogDispatchDrop(logger, "Pong::input", "MsgA", "MsgB")
	observability.LogActionRegistered(logger, "Ping", "Action")

	out := buf.String()
	assert.Contains(t, out, "link connected")
	assert.Contains(t, out, "mode=static")
	assert.Contains(t, out, "link disconnected")
	assert.Contains(t, out, "purged_entries=2")
	assert.Contains(t, out, "message emitted")
	assert.Contains(t, out, "incompatible message dropped")
	assert.Contains(t, out, "action registered")
}

func TestLogHelpersNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.LogConnect(nil, "a", "b", "c", "static")
		observability.LogDisconnect(nil, "a", "b", "c", 0)
		observability.LogEmit(nil, "a", "b", 0)
		observability.LogDispatchDrop(nil, "a", "b", "c")
		observability.LogActionRegistered(nil, "a", "b")
	})
}

func TestTimedOperation(t *testing.T) {
	done := observability.TimedOperation()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, done(), time.Millisecond)
}
