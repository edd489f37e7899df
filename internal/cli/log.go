package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat renders "14:32:01.45".
const logTimeFormat = "15:04:05.00"

// newLogger returns the CLI logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// stageTimer measures one CLI step and logs it with structured fields.
type stageTimer struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

func startStage(l *log.Logger, stage string) *stageTimer {
	return &stageTimer{logger: l, stage: stage, start: time.Now()}
}

// done logs the stage name, keyvals and the elapsed time rounded to the
// millisecond, e.g. "sample shape=box vertices=386 elapsed=41ms".
func (s *stageTimer) done(keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(s.stage, keyvals...)
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
