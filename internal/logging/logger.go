package logging

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Spok95/progbase-bot/internal/ctxutil"
)

type Log struct {
	Base   *zap.Logger
	Sugar  *zap.SugaredLogger
	Level  zap.AtomicLevel
	Closer func()
}

func Init(level, env string) (*Log, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var cfg zap.Config
	if strings.ToLower(env) == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, err
	}
	return wrap(base, lvl), nil
}

// Nop — логгер для тестов и CLI без вывода.
func Nop() *Log {
	return wrap(zap.NewNop(), zap.NewAtomicLevelAt(zap.FatalLevel))
}

func wrap(base *zap.Logger, lvl zap.AtomicLevel) *Log {
	return &Log{
		Base:   base,
		Sugar:  base.Sugar(),
		Level:  lvl,
		Closer: func() { _ = base.Sync() },
	}
}

// For — sugared-логгер с полями запроса из контекста (request_id, chat_id, op).
func (l *Log) For(ctx context.Context) *zap.SugaredLogger {
	return l.Sugar.With(ctxutil.Fields(ctx)...)
}
