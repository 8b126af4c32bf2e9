package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// Amount is a money value sent either as a JSON number or as a string,
// including the pt-BR form "1.234,56". Parsing is left to the domain.
type Amount string

// UnmarshalJSON accepts numbers and strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// AddPurchaseRequest represents the request body for adding a purchase.
type AddPurchaseRequest struct {
	Date        string `json:"date" binding:"required"`
	Amount      Amount `json:"amount"`
	GroupTag    string `json:"group_tag"`
	SupplierTag string `json:"supplier_tag"`
	// SelectedPeriod is the period key the client is showing, e.g. "3-2025".
	SelectedPeriod string `json:"selected_period"`
}

// SetRevenueRequest represents the request body for setting a day's revenue.
type SetRevenueRequest struct {
	Date    string `json:"date" binding:"required"`
	Revenue Amount `json:"revenue"`
}

// RecordResponse represents one daily record.
type RecordResponse struct {
	Date           string          `json:"date"`
	WeekdayLabel   string          `json:"weekday_label"`
	Revenue        decimal.Decimal `json:"revenue"`
	PurchaseAmount decimal.Decimal `json:"purchase_amount"`
	GroupTag       string          `json:"group_tag"`
	SupplierTag    string          `json:"supplier_tag"`
}

// RecordListResponse represents the records of one period.
type RecordListResponse struct {
	Period  string           `json:"period"`
	Records []RecordResponse `json:"records"`
}

// AddPurchaseResponse represents the result of adding a purchase.
type AddPurchaseResponse struct {
	Record                RecordResponse   `json:"record"`
	Period                string           `json:"period"`
	Records               []RecordResponse `json:"records"`
	OutsideSelectedPeriod bool             `json:"outside_selected_period"`
}

// RemovePurchaseResponse represents the result of removing a purchase.
type RemovePurchaseResponse struct {
	Period  string           `json:"period"`
	Records []RecordResponse `json:"records"`
	Pruned  bool             `json:"pruned"`
}

// SetRevenueResponse represents the result of setting a revenue.
type SetRevenueResponse struct {
	Record  RecordResponse   `json:"record"`
	Period  string           `json:"period"`
	Records []RecordResponse `json:"records"`
}

// ToRecordResponse converts a DailyRecord to a RecordResponse DTO.
func ToRecordResponse(r *entity.DailyRecord) RecordResponse {
	return RecordResponse{
		Date:           r.DateKey(),
		WeekdayLabel:   r.WeekdayLabel,
		Revenue:        r.Revenue,
		PurchaseAmount: r.PurchaseAmount,
		GroupTag:       r.GroupTag,
		SupplierTag:    r.SupplierTag,
	}
}

// ToRecordResponses converts a record list.
func ToRecordResponses(records []*entity.DailyRecord) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i, r := range records {
		out[i] = ToRecordResponse(r)
	}
	return out
}
