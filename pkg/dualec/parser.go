package dualec

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
)

// OutputParser defines the interface for reading captured generator outputs.
type OutputParser interface {
	// ParseOutputs parses consecutive outputs from a source, in order.
	ParseOutputs(source string) ([]*big.Int, error)
}

// JSONParser parses outputs from JSON files.
type JSONParser struct {
	Field string // Field name for object entries (default: "output")
}

// ParseOutputs parses outputs from a JSON file.
//
// Expected format, entries may be mixed:
// [
//
//	12345,
//	"0x3039",
//	{"output": "12345"}
//
// ]
func (p *JSONParser) ParseOutputs(jsonFile string) ([]*big.Int, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()
	return p.parse(file)
}

func (p *JSONParser) parse(r io.Reader) ([]*big.Int, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	field := p.Field
	if field == "" {
		field = "output"
	}

	outputs := make([]*big.Int, 0, len(items))
	for i, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			v, ok := obj[field]
			if !ok {
				return nil, fmt.Errorf("entry %d: missing %s field", i, field)
			}
			item = v
		}
		out, err := parseBigInt(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// CSVParser parses outputs from CSV files with a header row.
type CSVParser struct {
	Column string // Column name for outputs (default: "output")
}

// ParseOutputs parses outputs from a CSV file.
func (p *CSVParser) ParseOutputs(csvFile string) ([]*big.Int, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return p.parse(file)
}

func (p *CSVParser) parse(r io.Reader) ([]*big.Int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	column := p.Column
	if column == "" {
		column = "output"
	}
	idx := -1
	for i, col := range header {
		if strings.TrimSpace(col) == column {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("missing required column: %s", column)
	}

	outputs := make([]*big.Int, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if idx >= len(record) {
			return nil, fmt.Errorf("%s column index out of range", column)
		}
		out, err := parseBigInt(record[idx])
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// parseBigInt parses a non-negative integer from a decimal string, a
// 0x-prefixed hex string or a JSON number.
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			base = 16
		}
		z, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case json.Number:
		// json.Number preserves precision for large integers
		z, ok := new(big.Int).SetString(string(v), 10)
		if !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}
