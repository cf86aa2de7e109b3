package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pokespeare/pkg/observability"
)

// logHooks reports upstream HTTP traffic and lookups at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.HTTPHooks   = (*logHooks)(nil)
	_ observability.LookupHooks = (*logHooks)(nil)
)

func registerHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetHTTPHooks(h)
	observability.SetLookupHooks(h)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("upstream request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, statusCode int, d time.Duration) {
	h.logger.Debug("upstream response", "method", method, "host", host, "path", path,
		"status", statusCode, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("upstream error", "method", method, "host", host, "path", path, "err", err)
}

func (h *logHooks) OnLookupStart(_ context.Context, name string, translated bool) {
	h.logger.Debug("lookup started", "name", name, "translated", translated)
}

func (h *logHooks) OnLookupComplete(_ context.Context, name string, translated bool, dialect string, d time.Duration, err error) {
	fields := []any{"name", name, "translated", translated, "duration", d.Round(time.Millisecond)}
	if dialect != "" {
		fields = append(fields, "dialect", dialect)
	}
	if err != nil {
		fields = append(fields, "err", err)
	}
	h.logger.Debug("lookup finished", fields...)
}
