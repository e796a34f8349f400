package holds

import (
	"context"
	"encoding/json"
	"fmt"

	"stepperslife/pkg/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeCleanupExpiredHolds = "holds:cleanup"

// AllEvents in a cleanup payload sweeps every active chart.
const AllEvents = "all"

type CleanupPayload struct {
	EventID string `json:"event_id"`
}

// NewCleanupTask builds a cleanup task for one event, or for every chart
// when eventID is AllEvents.
func NewCleanupTask(eventID string) (*asynq.Task, error) {
	payload, err := json.Marshal(CleanupPayload{EventID: eventID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCleanupExpiredHolds, payload), nil
}

// TaskHandler runs hold cleanup tasks on the asynq worker
type TaskHandler struct {
	service Service
	log     *logger.Logger
}

func NewTaskHandler(service Service, log *logger.Logger) *TaskHandler {
	if log == nil {
		log = logger.GetDefault()
	}
	return &TaskHandler{service: service, log: log}
}

// Register mounts the handlers on mux
func (h *TaskHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeCleanupExpiredHolds, h.HandleCleanup)
}

func (h *TaskHandler) HandleCleanup(ctx context.Context, t *asynq.Task) error {
	var payload CleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("bad cleanup payload: %v: %w", err, asynq.SkipRetry)
	}

	if payload.EventID == "" || payload.EventID == AllEvents {
		result, err := h.service.CleanupAllExpiredHolds(ctx)
		if err != nil {
			return err
		}
		h.log.InfoContext(ctx, "Scheduled hold sweep finished",
			"charts", result.Charts, "cleaned", result.Cleaned, "failed", result.Failed)
		return nil
	}

	eventID, err := uuid.Parse(payload.EventID)
	if err != nil {
		return fmt.Errorf("bad event id %q: %w", payload.EventID, asynq.SkipRetry)
	}
	_, err = h.service.CleanupExpiredSessionHolds(ctx, eventID)
	return err
}
