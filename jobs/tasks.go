// Package jobs contains the Asynq background worker and task definitions.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/gudang-erp/gudang-erp/internal/shared"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPnLWarmup regenerates and caches a period's profit and loss
	// statement ahead of demand.
	TaskPnLWarmup = "pnl:warmup"
)

// PnLWarmupPayload names the period to warm up.
type PnLWarmupPayload struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewPnLWarmupTask constructs an Asynq task for the given period.
func NewPnLWarmupTask(period shared.Period) (*asynq.Task, error) {
	data, err := json.Marshal(PnLWarmupPayload{Month: period.Month, Year: period.Year})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPnLWarmup, data), nil
}
