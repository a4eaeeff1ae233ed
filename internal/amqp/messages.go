package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"infogastos/internal/core"
)

// ReportExportMessage asks the export worker to generate a report and write
// it to the spreadsheet sink. It carries the full report configuration so the
// worker needs nothing beyond the record store.
type ReportExportMessage struct {
	Title       string                `json:"title"`
	From        string                `json:"from"` // YYYY-MM-DD
	To          string                `json:"to"`   // YYYY-MM-DD
	Granularity string                `json:"granularity"`
	Filters     core.DimensionFilters `json:"filters"`
	RequestedAt time.Time             `json:"requested_at"`
}

// NewReportExportMessage builds an export request for the given report config.
func NewReportExportMessage(title string, rng core.DateRange, g core.Granularity, f core.DimensionFilters) *ReportExportMessage {
	return &ReportExportMessage{
		Title:       title,
		From:        rng.From.Format("2006-01-02"),
		To:          rng.To.Format("2006-01-02"),
		Granularity: string(g),
		Filters:     f,
		RequestedAt: time.Now().UTC(),
	}
}

// Range parses the message's date range back into domain form.
func (m *ReportExportMessage) Range() (core.DateRange, error) {
	from, err := core.ParseDate(m.From)
	if err != nil {
		return core.DateRange{}, fmt.Errorf("export message from date: %w", err)
	}
	to, err := core.ParseDate(m.To)
	if err != nil {
		return core.DateRange{}, fmt.Errorf("export message to date: %w", err)
	}
	rng := core.NewDateRange(from, to)
	if err := rng.Validate(); err != nil {
		return core.DateRange{}, fmt.Errorf("export message range: %w", err)
	}
	return rng, nil
}

// ToJSON converts the message to JSON bytes
func (m *ReportExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportExportMessageFromJSON creates a message from JSON bytes
func ReportExportMessageFromJSON(data []byte) (*ReportExportMessage, error) {
	var msg ReportExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal export message: %w", err)
	}
	return &msg, nil
}
