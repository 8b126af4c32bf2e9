package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// RecordDateLayout is the DD/MM/YYYY layout used for record dates on the wire.
const RecordDateLayout = "02/01/2006"

// MaxTagLength bounds group and supplier tags.
const MaxTagLength = 100

// weekdayLabels are the pt-BR weekday abbreviations, indexed by time.Weekday.
var weekdayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sab"}

// WeekdayLabel returns the three-letter pt-BR abbreviation for the date's weekday.
func WeekdayLabel(date time.Time) string {
	return weekdayLabels[date.Weekday()]
}

// DailyRecord is the revenue and purchase activity of one store on one day.
type DailyRecord struct {
	StoreID        string
	Date           time.Time
	WeekdayLabel   string
	Revenue        decimal.Decimal
	PurchaseAmount decimal.Decimal
	GroupTag       string
	SupplierTag    string
}

// DailyRecordInput is the raw, possibly partial, data a record is built from.
type DailyRecordInput struct {
	StoreID        string
	Date           string
	Revenue        string
	PurchaseAmount string
	GroupTag       string
	SupplierTag    string
}

// NewDailyRecord validates the input and returns a fully populated record.
// Missing amounts default to zero; the weekday label is derived once here.
func NewDailyRecord(input DailyRecordInput) (*DailyRecord, error) {
	date, err := ParseRecordDate(input.Date)
	if err != nil {
		return nil, err
	}

	revenue, err := parseOptionalAmount(input.Revenue)
	if err != nil {
		return nil, err
	}

	purchase, err := parseOptionalAmount(input.PurchaseAmount)
	if err != nil {
		return nil, err
	}

	groupTag, err := normalizeTag(input.GroupTag)
	if err != nil {
		return nil, err
	}

	supplierTag, err := normalizeTag(input.SupplierTag)
	if err != nil {
		return nil, err
	}

	return &DailyRecord{
		StoreID:        input.StoreID,
		Date:           date,
		WeekdayLabel:   WeekdayLabel(date),
		Revenue:        revenue,
		PurchaseAmount: purchase,
		GroupTag:       groupTag,
		SupplierTag:    supplierTag,
	}, nil
}

// ParseRecordDate parses a DD/MM/YYYY date into UTC midnight.
func ParseRecordDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domainerror.NewRecordError(
			domainerror.ErrCodeRecordDateRequired,
			"date is required",
			domainerror.ErrRecordDateRequired,
		)
	}

	date, err := time.ParseInLocation(RecordDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidRecordDate,
			"date must be in DD/MM/YYYY format",
			domainerror.ErrInvalidRecordDate,
		)
	}
	return date, nil
}

// ParseAmount parses a required, non-negative money value.
// Both "1234.56" and the pt-BR form "1.234,56" are accepted. Values finer
// than a cent are rejected, which also catches "1.234" written without the
// decimal comma.
func ParseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, domainerror.NewRecordError(
			domainerror.ErrCodeAmountRequired,
			"amount is required",
			domainerror.ErrAmountRequired,
		)
	}

	value = strings.TrimSpace(strings.TrimPrefix(value, "R$"))
	if strings.Contains(value, ",") {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.Replace(value, ",", ".", 1)
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be a number",
			domainerror.ErrInvalidAmount,
		)
	}

	if amount.IsNegative() {
		return decimal.Zero, domainerror.NewRecordError(
			domainerror.ErrCodeNegativeAmount,
			"amount must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}

	cents := amount.Round(2)
	if !amount.Equal(cents) {
		return decimal.Zero, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidAmount,
			"amount must have at most two decimal places, e.g. 1.234,56",
			domainerror.ErrInvalidAmount,
		)
	}

	return cents, nil
}

func parseOptionalAmount(value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(value)
}

func normalizeTag(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if len([]rune(tag)) > MaxTagLength {
		return "", domainerror.NewRecordError(
			domainerror.ErrCodeTagTooLong,
			"group and supplier names must have at most 100 characters",
			domainerror.ErrTagTooLong,
		)
	}
	return tag, nil
}

// DateKey returns the record date in DD/MM/YYYY form.
func (r *DailyRecord) DateKey() string {
	return r.Date.Format(RecordDateLayout)
}

// Period returns the period the record belongs to.
func (r *DailyRecord) Period() Period {
	return PeriodOf(r.Date)
}

// IsEmpty reports whether the record has neither revenue nor purchases.
func (r *DailyRecord) IsEmpty() bool {
	return r.Revenue.IsZero() && r.PurchaseAmount.IsZero()
}

// AddPurchase sums the amount into the day's purchases. Tags are only
// replaced by non-empty values.
func (r *DailyRecord) AddPurchase(amount decimal.Decimal, groupTag, supplierTag string) {
	r.PurchaseAmount = r.PurchaseAmount.Add(amount)
	if groupTag != "" {
		r.GroupTag = groupTag
	}
	if supplierTag != "" {
		r.SupplierTag = supplierTag
	}
}

// ClearPurchase zeroes the day's purchases and drops both tags.
func (r *DailyRecord) ClearPurchase() {
	r.PurchaseAmount = decimal.Zero
	r.GroupTag = ""
	r.SupplierTag = ""
}

// SortRecords orders records ascending by date, in place.
func SortRecords(records []*DailyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

// PruneEmpty returns the records that still carry revenue or purchases.
func PruneEmpty(records []*DailyRecord) []*DailyRecord {
	kept := make([]*DailyRecord, 0, len(records))
	for _, r := range records {
		if !r.IsEmpty() {
			kept = append(kept, r)
		}
	}
	return kept
}

// FindRecord returns the record for the given day, if present.
func FindRecord(records []*DailyRecord, date time.Time) (*DailyRecord, bool) {
	for _, r := range records {
		if r.Date.Equal(date) {
			return r, true
		}
	}
	return nil, false
}
