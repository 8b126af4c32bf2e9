package dto

import (
	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/dashboard"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/metrics"
)

// PeriodMetricsResponse represents the headline KPIs of a period.
type PeriodMetricsResponse struct {
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalPurchases       decimal.Decimal `json:"total_purchases"`
	CurrentCostRatio     decimal.Decimal `json:"current_cost_ratio"`
	DaysWithActivity     int             `json:"days_with_activity"`
	DaysRemaining        int             `json:"days_remaining"`
	DaysRemainingDisplay int             `json:"days_remaining_display"`
	ProjectedRevenue     decimal.Decimal `json:"projected_revenue"`
	AverageDailyRevenue  decimal.Decimal `json:"average_daily_revenue"`
}

// FormattedMetricsResponse carries the KPIs rendered for display.
type FormattedMetricsResponse struct {
	TotalRevenue        string `json:"total_revenue"`
	TotalPurchases      string `json:"total_purchases"`
	CurrentCostRatio    string `json:"current_cost_ratio"`
	ProjectedRevenue    string `json:"projected_revenue"`
	AverageDailyRevenue string `json:"average_daily_revenue"`
	Target              string `json:"target"`
}

// TargetResponse represents the period ratio against its target.
type TargetResponse struct {
	Percent decimal.Decimal `json:"percent"`
	Source  string          `json:"source"`
	Status  string          `json:"status"`
	Within  bool            `json:"within"`
	Diff    decimal.Decimal `json:"diff"`
}

// GroupMetricResponse represents the activity of one group.
type GroupMetricResponse struct {
	GroupID        uint            `json:"group_id"`
	Name           string          `json:"name"`
	Color          string          `json:"color"`
	Icon           string          `json:"icon"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	CostRatio      decimal.Decimal `json:"cost_ratio"`
	TargetPercent  decimal.Decimal `json:"target_percent"`
	WithinTarget   bool            `json:"within_target"`
}

// SupplierMetricResponse represents the activity of one supplier.
type SupplierMetricResponse struct {
	SupplierID     uint            `json:"supplier_id"`
	Name           string          `json:"name"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	CostRatio      decimal.Decimal `json:"cost_ratio"`
}

// RunningTotalResponse represents one day of the cumulative series.
type RunningTotalResponse struct {
	Date                string           `json:"date"`
	WeekdayLabel        string           `json:"weekday_label"`
	Revenue             decimal.Decimal  `json:"revenue"`
	PurchaseAmount      decimal.Decimal  `json:"purchase_amount"`
	GroupTag            string           `json:"group_tag"`
	SupplierTag         string           `json:"supplier_tag"`
	CumulativeRevenue   decimal.Decimal  `json:"cumulative_revenue"`
	CumulativePurchases decimal.Decimal  `json:"cumulative_purchases"`
	DailyCostRatio      *decimal.Decimal `json:"daily_cost_ratio"`
	CumulativeCostRatio decimal.Decimal  `json:"cumulative_cost_ratio"`
}

// RecentPurchaseResponse represents one recent purchase day.
type RecentPurchaseResponse struct {
	Date         string          `json:"date"`
	WeekdayLabel string          `json:"weekday_label"`
	Amount       decimal.Decimal `json:"amount"`
	GroupTag     string          `json:"group_tag"`
	SupplierTag  string          `json:"supplier_tag"`
	Impact       decimal.Decimal `json:"impact"`
}

// DashboardResponse represents the dashboard of one period.
type DashboardResponse struct {
	StoreID         string                   `json:"store_id"`
	Period          string                   `json:"period"`
	DaysInMonth     int                      `json:"days_in_month"`
	Metrics         PeriodMetricsResponse    `json:"metrics"`
	Formatted       FormattedMetricsResponse `json:"formatted"`
	Target          TargetResponse           `json:"target"`
	RevenueTarget   *decimal.Decimal         `json:"revenue_target,omitempty"`
	RevenueProgress *decimal.Decimal         `json:"revenue_progress,omitempty"`
	Groups          []GroupMetricResponse    `json:"groups"`
	RunningTotals   []RunningTotalResponse   `json:"running_totals"`
	RecentPurchases []RecentPurchaseResponse `json:"recent_purchases"`
	Cached          bool                     `json:"cached"`
}

// GroupAnalysisResponse represents the group breakdown of a period.
type GroupAnalysisResponse struct {
	Period            string                `json:"period"`
	Groups            []GroupMetricResponse `json:"groups"`
	TotalPurchases    decimal.Decimal       `json:"total_purchases"`
	TotalRevenue      decimal.Decimal       `json:"total_revenue"`
	UntaggedPurchases decimal.Decimal       `json:"untagged_purchases"`
}

// SupplierAnalysisResponse represents the supplier breakdown of a period.
type SupplierAnalysisResponse struct {
	Period    string                   `json:"period"`
	Suppliers []SupplierMetricResponse `json:"suppliers"`
}

// ToDashboardResponse converts a dashboard output to its DTO.
func ToDashboardResponse(out *dashboard.GetDashboardOutput) DashboardResponse {
	m := out.Metrics
	resp := DashboardResponse{
		StoreID:     out.StoreID,
		Period:      out.Period.Key(),
		DaysInMonth: out.DaysInMonth,
		Metrics: PeriodMetricsResponse{
			TotalRevenue:         m.TotalRevenue,
			TotalPurchases:       m.TotalPurchases,
			CurrentCostRatio:     m.CurrentCostRatio,
			DaysWithActivity:     m.DaysWithActivity,
			DaysRemaining:        m.DaysRemaining,
			DaysRemainingDisplay: out.DaysRemainingDisplay,
			ProjectedRevenue:     m.ProjectedRevenue,
			AverageDailyRevenue:  m.AverageDailyRevenue,
		},
		Formatted: FormattedMetricsResponse{
			TotalRevenue:        metrics.FormatCurrency(m.TotalRevenue),
			TotalPurchases:      metrics.FormatCurrency(m.TotalPurchases),
			CurrentCostRatio:    metrics.FormatPercent(m.CurrentCostRatio),
			ProjectedRevenue:    metrics.FormatCurrency(m.ProjectedRevenue),
			AverageDailyRevenue: metrics.FormatCurrency(m.AverageDailyRevenue),
			Target:              metrics.FormatPercent(out.TargetPercent),
		},
		Target: TargetResponse{
			Percent: out.TargetPercent,
			Source:  out.TargetSource,
			Status:  string(out.Target.Status),
			Within:  out.Target.Within,
			Diff:    out.Target.Diff,
		},
		RevenueTarget:   out.RevenueTarget,
		RevenueProgress: out.RevenueProgress,
		Groups:          ToGroupMetricResponses(out.Groups),
		RunningTotals:   make([]RunningTotalResponse, len(out.RunningTotals)),
		RecentPurchases: make([]RecentPurchaseResponse, len(out.RecentPurchases)),
		Cached:          out.Cached,
	}

	for i, rt := range out.RunningTotals {
		resp.RunningTotals[i] = RunningTotalResponse{
			Date:                rt.Date.Format(entity.RecordDateLayout),
			WeekdayLabel:        rt.WeekdayLabel,
			Revenue:             rt.Revenue,
			PurchaseAmount:      rt.PurchaseAmount,
			GroupTag:            rt.GroupTag,
			SupplierTag:         rt.SupplierTag,
			CumulativeRevenue:   rt.CumulativeRevenue,
			CumulativePurchases: rt.CumulativePurchases,
			DailyCostRatio:      rt.DailyCostRatio,
			CumulativeCostRatio: rt.CumulativeCostRatio,
		}
	}
	for i, p := range out.RecentPurchases {
		resp.RecentPurchases[i] = RecentPurchaseResponse{
			Date:         p.Date.Format(entity.RecordDateLayout),
			WeekdayLabel: p.WeekdayLabel,
			Amount:       p.Amount,
			GroupTag:     p.GroupTag,
			SupplierTag:  p.SupplierTag,
			Impact:       p.Impact,
		}
	}

	return resp
}

// ToGroupMetricResponses converts group metrics.
func ToGroupMetricResponses(groups []metrics.GroupMetric) []GroupMetricResponse {
	out := make([]GroupMetricResponse, len(groups))
	for i, g := range groups {
		out[i] = GroupMetricResponse{
			GroupID:        g.GroupID,
			Name:           g.Name,
			Color:          g.Color,
			Icon:           g.Icon,
			TotalPurchases: g.TotalPurchases,
			TotalRevenue:   g.TotalRevenue,
			CostRatio:      g.CostRatio,
			TargetPercent:  g.TargetPercent,
			WithinTarget:   g.WithinTarget(),
		}
	}
	return out
}

// ToGroupAnalysisResponse converts a group analysis output.
func ToGroupAnalysisResponse(out *dashboard.GetGroupAnalysisOutput) GroupAnalysisResponse {
	return GroupAnalysisResponse{
		Period:            out.Period.Key(),
		Groups:            ToGroupMetricResponses(out.Groups),
		TotalPurchases:    out.TotalPurchases,
		TotalRevenue:      out.TotalRevenue,
		UntaggedPurchases: out.UntaggedPurchases,
	}
}

// ToSupplierAnalysisResponse converts a supplier analysis output.
func ToSupplierAnalysisResponse(out *dashboard.GetSupplierAnalysisOutput) SupplierAnalysisResponse {
	suppliers := make([]SupplierMetricResponse, len(out.Suppliers))
	for i, s := range out.Suppliers {
		suppliers[i] = SupplierMetricResponse{
			SupplierID:     s.SupplierID,
			Name:           s.Name,
			TotalPurchases: s.TotalPurchases,
			TotalRevenue:   s.TotalRevenue,
			CostRatio:      s.CostRatio,
		}
	}
	return SupplierAnalysisResponse{
		Period:    out.Period.Key(),
		Suppliers: suppliers,
	}
}
