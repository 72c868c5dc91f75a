package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medibook/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds an asynq task that fires at the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler queues reminder tasks on Redis.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// NewAsynqReminderScheduler creates a scheduler over the given Redis queue.
func NewAsynqReminderScheduler(redisOpts asynq.RedisClientOpt) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: asynq.NewClient(redisOpts)}
}

// ScheduleReminder enqueues a reminder for delivery at fireAt.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
