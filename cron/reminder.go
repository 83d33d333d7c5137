package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"agendabot/models"
)

const TypeBookingReminder = "booking:reminder"

// Sent to the client ahead of their slot.
const reminderLead = 1 * time.Hour

// ReminderPayload is the task body queued for a confirmed booking.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	ClientName string `json:"clientName"`
	Date       string `json:"date"`
	Slot       string `json:"slot"`
}

// OutboundSender delivers a message to a client. Implemented by the chat
// transport collaborator.
type OutboundSender interface {
	SendMessage(ctx context.Context, clientName, text string) error
}

// ReminderQueue schedules booking reminders through asynq.
type ReminderQueue struct {
	client *asynq.Client
}

func NewReminderQueue(redisOpt asynq.RedisClientOpt) *ReminderQueue {
	return &ReminderQueue{client: asynq.NewClient(redisOpt)}
}

// ScheduleReminder queues a reminder to fire one hour before the slot.
// Bookings too close to their slot get no reminder.
func (q *ReminderQueue) ScheduleReminder(ctx context.Context, booking models.Booking) error {
	fireAt, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.Slot, time.Local)
	if err != nil {
		return fmt.Errorf("parse booking time: %w", err)
	}
	fireAt = fireAt.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{
		BookingID:  booking.ID,
		ClientName: booking.ClientName,
		Date:       booking.Date,
		Slot:       booking.Slot,
	})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeBookingReminder, payload)
	_, err = q.client.Enqueue(task, asynq.ProcessAt(fireAt), asynq.MaxRetry(3))
	return err
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(redisOpt asynq.RedisClientOpt, sender OutboundSender) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, handleReminderTask(sender))

	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempt, maxAttempts, err)
				if attempt == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(sender OutboundSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderWorker] Invalid payload: %v", err)
			return err
		}

		text := fmt.Sprintf("Reminder: your appointment is today at %s. See you soon!", p.Slot)
		if err := sender.SendMessage(ctx, p.ClientName, text); err != nil {
			log.Printf("[ReminderWorker] Failed to deliver reminder for booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}
