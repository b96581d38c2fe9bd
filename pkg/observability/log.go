package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events to a logger at debug level, and
// failures at error level.
type LogPipelineHooks struct {
	logger *log.Logger
}

// NewLogPipelineHooks creates hooks writing to logger.
func NewLogPipelineHooks(logger *log.Logger) *LogPipelineHooks {
	return &LogPipelineHooks{logger: logger}
}

func (h *LogPipelineHooks) OnGenerateStart(_ context.Context, runID string, units int) {
	h.logger.Debug("generate started", "run", runID, "units", units)
}

func (h *LogPipelineHooks) OnGenerateComplete(_ context.Context, runID string, units int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("generate failed", "run", runID, "error", err)
		return
	}
	h.logger.Debug("generate finished", "run", runID, "units", units, "duration", d.Round(time.Microsecond))
}

func (h *LogPipelineHooks) OnUnitComplete(_ context.Context, runID, path, language string, cached bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("unit failed", "run", runID, "path", path, "error", err)
		return
	}
	h.logger.Debug("unit generated", "run", runID, "path", path, "language", language, "cached", cached, "duration", d.Round(time.Microsecond))
}

func (h *LogPipelineHooks) OnRenderStart(_ context.Context, format string, symbols int) {
	h.logger.Debug("render started", "format", format, "symbols", symbols)
}

func (h *LogPipelineHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("render finished", "format", format, "duration", d.Round(time.Microsecond))
}

var _ PipelineHooks = (*LogPipelineHooks)(nil)
