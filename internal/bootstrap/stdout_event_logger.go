package bootstrap

import (
	"context"
	"time"

	"out-of-office/internal/shared/contextutil"

	"go.uber.org/zap"
)

type EventLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type EventLogger interface {
	Log(ctx context.Context, entry EventLog)
}

type StdoutEventLogger struct {
	logger *zap.Logger
}

func NewStdoutEventLogger(logger ...*zap.Logger) *StdoutEventLogger {
	l := zap.L().Named("events")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("events")
	}
	return &StdoutEventLogger{logger: l}
}

func (l *StdoutEventLogger) Log(ctx context.Context, entry EventLog) {
	l.logger.Info("event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
