package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline, cache and HTTP events to a logger at debug
// level, and failures at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to l, or to log.Default() when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnComposeStart(_ context.Context, kind string) {
	h.Logger.Debug("compose start", "kind", kind)
}

func (h *LogHooks) OnComposeComplete(_ context.Context, kind string, pages int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("compose failed", "kind", kind, "err", err)
		return
	}
	h.Logger.Debug("compose done", "kind", kind, "pages", pages, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render done", "formats", formats, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
