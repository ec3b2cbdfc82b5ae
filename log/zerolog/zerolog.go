package zerolog

import (
	zl "github.com/rs/zerolog"

	"github.com/unkn0wn-root/nscache"
)

type ZerologLogger struct{ L zl.Logger }

var _ nscache.Logger = ZerologLogger{}

func (z ZerologLogger) Debug(msg string, f nscache.Fields) { emit(z.L.Debug(), msg, f) }
func (z ZerologLogger) Info(msg string, f nscache.Fields)  { emit(z.L.Info(), msg, f) }
func (z ZerologLogger) Warn(msg string, f nscache.Fields)  { emit(z.L.Warn(), msg, f) }
func (z ZerologLogger) Error(msg string, f nscache.Fields) { emit(z.L.Error(), msg, f) }

func emit(e *zl.Event, msg string, f nscache.Fields) {
	if len(f) > 0 {
		e = e.Fields(map[string]any(f))
	}
	e.Msg(msg)
}
