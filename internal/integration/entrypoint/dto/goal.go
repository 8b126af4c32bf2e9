package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Period            string           `json:"period"`
	RevenueTarget     *decimal.Decimal `json:"revenue_target"`
	CostTargetPercent *decimal.Decimal `json:"cost_target_percent,omitempty"`
	AverageTicket     *decimal.Decimal `json:"average_ticket,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID                uint            `json:"id"`
	Period            string          `json:"period"`
	RevenueTarget     decimal.Decimal `json:"revenue_target"`
	CostTargetPercent decimal.Decimal `json:"cost_target_percent"`
	AverageTicket     decimal.Decimal `json:"average_ticket"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:                g.ID,
		Period:            g.Period,
		RevenueTarget:     g.RevenueTarget,
		CostTargetPercent: g.CostTargetPercent,
		AverageTicket:     g.AverageTicket,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
}

// ToGoalListResponse converts a list of goals.
func ToGoalListResponse(goals []*entity.Goal) GoalListResponse {
	out := make([]GoalResponse, len(goals))
	for i, g := range goals {
		out[i] = ToGoalResponse(g)
	}
	return GoalListResponse{Goals: out}
}
