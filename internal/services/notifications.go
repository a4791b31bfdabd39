package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

const (
	DefaultPeriodReminderDays = 2
	notificationInterval      = 6 * time.Hour
	maxTrackedNotifications   = 500
)

type NotificationUserReader interface {
	ListWithReminderConsent(ctx context.Context) ([]models.User, error)
}

type NotificationConfig struct {
	BotToken           string
	ChatID             string
	PeriodReminderDays int
	FertilityReminder  bool
	APIBaseURL         string
}

func (config NotificationConfig) Enabled() bool {
	return strings.TrimSpace(config.BotToken) != "" && strings.TrimSpace(config.ChatID) != ""
}

type NotificationService struct {
	users                  NotificationUserReader
	config                 NotificationConfig
	location               *time.Location
	client                 *http.Client
	mu                     sync.Mutex
	sentDailyNotifications map[string]time.Time
}

func NewNotificationService(users NotificationUserReader, config NotificationConfig, location *time.Location) *NotificationService {
	if location == nil {
		location = time.Local
	}
	if config.PeriodReminderDays < 0 {
		config.PeriodReminderDays = DefaultPeriodReminderDays
	}
	if strings.TrimSpace(config.APIBaseURL) == "" {
		config.APIBaseURL = "https://api.telegram.org"
	}

	return &NotificationService{
		users:    users,
		config:   config,
		location: location,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		sentDailyNotifications: make(map[string]time.Time),
	}
}

func (service *NotificationService) Start(ctx context.Context) {
	if !service.config.Enabled() {
		return
	}

	ticker := time.NewTicker(notificationInterval)
	go func() {
		defer ticker.Stop()

		service.Run(ctx, time.Now())
		for {
			select {
			case <-ctx.Done():
				return
			case tick := <-ticker.C:
				service.Run(ctx, tick)
			}
		}
	}()
}

// Run sends the reminders due at now. Each reminder goes out at most once per day.
func (service *NotificationService) Run(ctx context.Context, now time.Time) {
	owners, err := service.users.ListWithReminderConsent(ctx)
	if err != nil {
		log.Printf("notifications: fetch owners failed: %v", err)
		return
	}

	for _, message := range service.DueReminders(owners, now) {
		if err := service.sendTelegram(ctx, message); err != nil {
			log.Printf("notifications: send reminder failed: %v", err)
		}
	}
}

func (service *NotificationService) DueReminders(owners []models.User, now time.Time) []string {
	today := DateAtLocation(now, service.location)
	messages := make([]string, 0)

	for _, owner := range owners {
		if !owner.ReminderConsent {
			continue
		}
		predictions, err := PredictNextCycle(owner.CycleConfig(), today)
		if err != nil {
			continue
		}

		if predictions.DaysUntilPeriod == service.config.PeriodReminderDays {
			key := fmt.Sprintf("period:%d:%s", owner.ID, FormatDay(today))
			if service.shouldSend(key, today) {
				messages = append(messages, fmt.Sprintf("Cycle reminder: your predicted period starts in %d day(s) on %s.",
					service.config.PeriodReminderDays,
					predictions.NextPeriodStart.Format("Jan 2"),
				))
			}
		}

		if service.config.FertilityReminder && sameCalendarDay(today, predictions.FertileWindow[0]) {
			key := fmt.Sprintf("fertility:%d:%s", owner.ID, FormatDay(today))
			if service.shouldSend(key, today) {
				messages = append(messages, fmt.Sprintf("Cycle reminder: your fertile window starts today (%s).",
					predictions.FertileWindow[0].Format("Jan 2"),
				))
			}
		}
	}
	return messages
}

func (service *NotificationService) shouldSend(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if sentOn, ok := service.sentDailyNotifications[key]; ok && sameCalendarDay(sentOn, today) {
		return false
	}

	if len(service.sentDailyNotifications) >= maxTrackedNotifications {
		service.sentDailyNotifications = make(map[string]time.Time)
	}
	service.sentDailyNotifications[key] = today
	return true
}

func (service *NotificationService) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", service.config.ChatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(service.config.APIBaseURL, "/"), service.config.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
