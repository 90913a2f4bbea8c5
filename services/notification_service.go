package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/config"
	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"gorm.io/gorm"
)

// Event is what the state-owning services hand to the dispatcher after a
// committed transition. The dispatcher owns all user-facing text; the state
// layer only fills ids and the payload map.
type Event struct {
	EventType  string
	UserID     int
	ActorID    int
	DocumentID *int
	DispatchID *int
	Severity   string // info|success|warning|error
	Data       map[string]string
	Email      bool
}

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func applyTemplatePlaceholders(text string, data map[string]string) string {
	result := text
	for key, value := range data {
		placeholder := "{{" + key + "}}"
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

func (s *NotificationService) fetchTemplate(eventKey string) (*models.NotificationTemplate, error) {
	var tmpl models.NotificationTemplate
	if err := s.db.Where("event_key = ? AND is_active = 1", eventKey).
		First(&tmpl).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// Notify renders the template for the event and stores one notification row.
// Delivery is at-least-once and never blocks the calling transition: failures
// are logged, not returned, and duplicates are tolerated downstream.
func (s *NotificationService) Notify(event Event) {
	title := event.EventType
	message := ""

	if tmpl, err := s.fetchTemplate(event.EventType); err == nil {
		title = applyTemplatePlaceholders(tmpl.TitleTemplate, event.Data)
		message = applyTemplatePlaceholders(tmpl.BodyTemplate, event.Data)
	} else {
		// No template seeded for this event: fall back to the raw payload so
		// the notification is still delivered.
		pairs := make([]string, 0, len(event.Data))
		for k, v := range event.Data {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, v))
		}
		message = strings.Join(pairs, ", ")
	}

	severity := event.Severity
	if severity == "" {
		severity = "info"
	}

	notification := models.Notification{
		UserID:    uint(event.UserID),
		EventType: event.EventType,
		Title:     title,
		Message:   message,
		Type:      severity,
	}
	if event.DocumentID != nil {
		id := uint(*event.DocumentID)
		notification.RelatedDocumentID = &id
	}
	if event.DispatchID != nil {
		id := uint(*event.DispatchID)
		notification.RelatedDispatchID = &id
	}

	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to store notification %s for user %d: %v",
			event.EventType, event.UserID, err)
		return
	}

	if event.Email {
		go s.sendEmail(event.UserID, title, message)
	}
}

func (s *NotificationService) sendEmail(userID int, subject, body string) {
	var user models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		log.Printf("Warning: e-mail skipped, user %d not found: %v", userID, err)
		return
	}
	html := "<p>" + body + "</p>"
	if err := config.SendMail([]string{user.Email}, subject, html); err != nil {
		log.Printf("Warning: failed to send e-mail to %s: %v", user.Email, err)
	}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID, limit, offset int) ([]models.Notification, int64, error) {
	var total int64
	if err := s.db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var rows []models.Notification
	if err := s.db.Where("user_id = ?", userID).
		Order("create_at DESC, notification_id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return rows, total, nil
}

func (s *NotificationService) UnreadCount(userID int) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = 0", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flips is_read for one notification. Idempotent and scoped to the
// owning user.
func (s *NotificationService) MarkRead(notificationID, userID int) error {
	return s.db.Exec(
		"UPDATE notifications SET is_read = 1, update_at = NOW() WHERE notification_id = ? AND user_id = ?",
		notificationID, userID,
	).Error
}

func (s *NotificationService) MarkAllRead(userID int) error {
	return s.db.Exec(
		"UPDATE notifications SET is_read = 1, update_at = NOW() WHERE user_id = ? AND is_read = 0",
		userID,
	).Error
}
