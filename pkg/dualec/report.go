package dualec

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ReportRow is the outcome of one truncation width.
type ReportRow struct {
	TruncationBits uint    `json:"truncation_bits"`
	CandidateCount int     `json:"candidate_count"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Found          bool    `json:"found"`
}

// Report collects the rows of a sweep.
type Report struct {
	RunID     uuid.UUID   `json:"run_id"`
	Curve     string      `json:"curve"`
	Strategy  string      `json:"strategy"`
	CreatedAt time.Time   `json:"created_at"`
	Rows      []ReportRow `json:"rows"`
}

// NewReport starts an empty report under a fresh run ID.
func NewReport(curve, strategy string) *Report {
	return &Report{
		RunID:     uuid.New(),
		Curve:     curve,
		Strategy:  strategy,
		CreatedAt: time.Now().UTC(),
		Rows:      []ReportRow{},
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteCSV writes one header line and one line per row.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "truncation_bits", "candidate_count", "elapsed_seconds", "found"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range r.Rows {
		record := []string{
			r.RunID.String(),
			strconv.FormatUint(uint64(row.TruncationBits), 10),
			strconv.Itoa(row.CandidateCount),
			strconv.FormatFloat(row.ElapsedSeconds, 'f', 6, 64),
			strconv.FormatBool(row.Found),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
