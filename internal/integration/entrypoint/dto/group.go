package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/group"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// GroupRequest represents the editable fields of a group.
type GroupRequest struct {
	Name              string           `json:"name"`
	Color             string           `json:"color"`
	CostTargetPercent *decimal.Decimal `json:"cost_target_percent"`
	Icon              string           `json:"icon"`
}

// ReplaceGroupItem is one entry of a full group list replacement.
type ReplaceGroupItem struct {
	ID uint `json:"id"`
	GroupRequest
}

// ReplaceGroupsRequest represents the request body for replacing the group list.
type ReplaceGroupsRequest struct {
	Groups []ReplaceGroupItem `json:"groups"`
}

// GroupResponse represents a single group in API responses.
type GroupResponse struct {
	ID                uint            `json:"id"`
	Name              string          `json:"name"`
	Color             string          `json:"color"`
	CostTargetPercent decimal.Decimal `json:"cost_target_percent"`
	Icon              string          `json:"icon"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// GroupListResponse represents the response for listing groups.
type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// DeleteGroupResponse reports the deleted group and how many records still
// carry its name as tag.
type DeleteGroupResponse struct {
	Message         string `json:"message"`
	Name            string `json:"name"`
	OrphanedRecords int64  `json:"orphaned_records"`
}

// ToGroupFields converts a request to use case fields.
func (r GroupRequest) ToGroupFields() group.GroupFields {
	return group.GroupFields{
		Name:              r.Name,
		Color:             r.Color,
		CostTargetPercent: r.CostTargetPercent,
		Icon:              r.Icon,
	}
}

// ToGroupResponse converts a domain Group entity to a GroupResponse DTO.
func ToGroupResponse(g *entity.Group) GroupResponse {
	return GroupResponse{
		ID:                g.ID,
		Name:              g.Name,
		Color:             g.Color,
		CostTargetPercent: g.CostTargetPercent,
		Icon:              g.Icon,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
}

// ToGroupListResponse converts a list of groups.
func ToGroupListResponse(groups []*entity.Group) GroupListResponse {
	out := make([]GroupResponse, len(groups))
	for i, g := range groups {
		out[i] = ToGroupResponse(g)
	}
	return GroupListResponse{Groups: out}
}
