// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email is rendered with.
type EmailTemplateType string

const (
	TemplateCostAlert EmailTemplateType = "cost_alert"
)

// defaultMaxEmailAttempts bounds delivery retries.
const defaultMaxEmailAttempts = 3

// retryDelays is indexed by the number of attempts already made.
var retryDelays = []time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is an email waiting in the outbound queue.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a pending job scheduled for immediate delivery.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    defaultMaxEmailAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing flags the job as picked up by a worker.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery.
func (e *EmailJob) MarkSent(providerID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ResendID = providerID
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. Permanent failures and exhausted
// jobs are closed; anything else goes back to pending with a backoff.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || !e.CanRetry() {
		now := time.Now().UTC()
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = time.Now().UTC().Add(e.nextDelay())
}

func (e *EmailJob) nextDelay() time.Duration {
	if e.Attempts < len(retryDelays) {
		return retryDelays[e.Attempts]
	}
	return retryDelays[len(retryDelays)-1]
}

// CanRetry reports whether attempts remain.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// IsReadyToProcess reports whether the job is pending and due.
func (e *EmailJob) IsReadyToProcess() bool {
	return e.Status == EmailStatusPending && !time.Now().UTC().Before(e.ScheduledAt)
}
