package executor

import "go.uber.org/zap"

// ZapLogger adapts a *zap.SugaredLogger to the Logger interface, so the
// default logger for an Executor (and, via pool.Options, a Controller) can be
// a real structured logger instead of a hand-rolled one.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger wraps s. A nil s is valid and makes every Printf a no-op.
func NewZapLogger(s *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{s: s}
}

func (z *ZapLogger) Printf(format string, args ...any) {
	if z == nil || z.s == nil {
		return
	}
	z.s.Infof(format, args...)
}
