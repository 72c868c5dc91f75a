package cron

import (
	"context"
	"encoding/json"
	"log"

	"medibook/config"
	"medibook/models"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask)

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[ReminderWorker] failed to start worker: %v", err)
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
		return err
	}

	// Delivery channels (mail, push) hang off here; for now the reminder
	// is recorded in the log stream.
	utils.GetLogger().Info("appointment reminder due",
		zap.String("appointmentId", p.AppointmentID),
		zap.String("subjectId", p.SubjectID),
		zap.String("provider", p.ProviderName),
		zap.String("slotDate", p.SlotDate),
		zap.String("slotTime", p.SlotTime))
	return nil
}
