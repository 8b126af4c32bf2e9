package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueCostAlertEmail queues a CMC-above-target alert for one store.
	QueueCostAlertEmail(ctx context.Context, input QueueCostAlertInput) error
}

// QueueCostAlertInput carries the already formatted figures of a cost alert.
type QueueCostAlertInput struct {
	RecipientEmail string
	StoreID        string
	StoreName      string
	Period         string
	Revenue        string
	Purchases      string
	CostRatio      string
	Target         string
	Diff           string
	GroupsAbove    []string
}
