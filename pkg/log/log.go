package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger returns a JSON logger that writes to stderr. Stdout is left
// untouched so callers can reserve it for their own output.
func NewZapLogger(name string, level zapcore.Level) *zap.SugaredLogger {
	return New(name, level, zapcore.Lock(os.Stderr))
}

func New(name string, level zapcore.Level, out zapcore.WriteSyncer) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), out, zap.NewAtomicLevelAt(level))

	return zap.New(core, zap.AddCaller()).Named(name).Sugar()
}
