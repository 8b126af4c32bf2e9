// Package email queues and delivers notification emails.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// alertDedupWindow suppresses a second alert for the same store and period.
const alertDedupWindow = 20 * time.Hour

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
	now        func() time.Time
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
		now:        time.Now,
	}
}

// CostAlertSubject is the subject of a cost alert, unique per store and period.
func CostAlertSubject(storeName, period string) string {
	return fmt.Sprintf("CMC acima da meta - %s (%s)", storeName, period)
}

// QueueCostAlertEmail queues a cost alert unless one for the same store and
// period was queued within the dedup window.
func (s *Service) QueueCostAlertEmail(ctx context.Context, input adapter.QueueCostAlertInput) error {
	subject := CostAlertSubject(input.StoreName, input.Period)

	recent, err := s.queue.HasRecentJob(ctx, entity.TemplateCostAlert, subject, s.now().UTC().Add(-alertDedupWindow))
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to check recent alerts",
			err,
		)
	}
	if recent {
		slog.Debug("Cost alert already queued", "store_id", input.StoreID, "period", input.Period)
		return nil
	}

	templateData := map[string]interface{}{
		"store_name":   input.StoreName,
		"period":       input.Period,
		"revenue":      input.Revenue,
		"purchases":    input.Purchases,
		"cost_ratio":   input.CostRatio,
		"target":       input.Target,
		"diff":         input.Diff,
		"groups_above": strings.Join(input.GroupsAbove, ", "),
		"dashboard_url": fmt.Sprintf("%s/?store=%s&period=%s",
			strings.TrimRight(s.appBaseURL, "/"), input.StoreID, input.Period),
	}

	job := entity.NewEmailJob(
		entity.TemplateCostAlert,
		input.RecipientEmail,
		"",
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue cost alert email",
			err,
		)
	}

	return nil
}

var _ adapter.EmailService = (*Service)(nil)
