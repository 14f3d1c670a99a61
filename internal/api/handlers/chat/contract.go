package chat

import (
	"context"

	"github.com/m04kA/PetSpa-BookingService/internal/flow"
)

type FlowEngine interface {
	Start(ctx context.Context, userID int64) (*flow.Reply, error)
	Message(ctx context.Context, sessionID string, userID int64, text string) (*flow.Reply, error)
	Abandon(sessionID string, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
