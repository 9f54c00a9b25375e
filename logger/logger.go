package logger

import (
	"go.uber.org/zap"
)

// Log is the process-wide logger. It starts as a production logger so packages
// can log before Init runs.
var Log *zap.Logger = newLogger("production")

// Init replaces the process-wide logger. env "development" switches to the
// human readable console encoder.
func Init(env string) {
	Log = newLogger(env)
}

func newLogger(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}

func Sync() {
	_ = Log.Sync()
}
