package interfaces

import (
	"context"
	"powerevents/internal/models"
)

type RecorderInterface interface {
	Boot(ctx context.Context) models.LogLine
	Run(ctx context.Context)
	Start(ctx context.Context)
}
