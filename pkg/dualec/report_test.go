package dualec

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	r := NewReport("toy103", "VerifiedSearch")
	r.Rows = append(r.Rows,
		ReportRow{TruncationBits: 0, CandidateCount: 1, ElapsedSeconds: 0.001, Found: true},
		ReportRow{TruncationBits: 1, CandidateCount: 2, ElapsedSeconds: 0.002, Found: true},
	)
	return r
}

func TestReport_WriteJSON(t *testing.T) {
	r := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Equal(t, "toy103", decoded.Curve)
	assert.Equal(t, r.Rows, decoded.Rows)
	assert.Contains(t, buf.String(), `"candidate_count": 2`)
}

func TestReport_WriteCSV(t *testing.T) {
	r := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"run_id", "truncation_bits", "candidate_count", "elapsed_seconds", "found"}, records[0])
	assert.Equal(t, []string{r.RunID.String(), "1", "2", "0.002000", "true"}, records[2])
}

func TestNewReport_UniqueRunIDs(t *testing.T) {
	a, b := NewReport("x", "s"), NewReport("x", "s")
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.NotEqual(t, uuid.Nil, a.RunID)
}
