// Package normalize converts loosely-typed imported records and manual
// table-entry rows into canonical samples.
package normalize

import (
	"fmt"
	"strings"

	"github.com/sells-group/variant-cli/internal/model"
)

// Record is one imported tabular row with arbitrary field names.
type Record map[string]any

// Row is one manual-entry table row. Mutations holds one mutation code per
// line, as typed into the entry form.
type Row struct {
	SequenceID string `json:"sequence_id"`
	Mutations  string `json:"mutations"`
	Location   string `json:"location"`
	Date       string `json:"date"`
}

// FromRecords converts imported records to canonical samples. Normalization
// is lossless and total: every record yields a sample, incomplete ones
// included. Filtering happens at submission, not here.
func FromRecords(records []Record) []model.Sample {
	samples := make([]model.Sample, 0, len(records))
	for _, rec := range records {
		samples = append(samples, fromRecord(rec))
	}
	return samples
}

func fromRecord(rec Record) model.Sample {
	return model.Sample{
		SequenceID: stringField(rec, "sequence_id", "id"),
		Mutations:  mutationsField(rec["mutations"]),
		Location:   stringField(rec, "location"),
		Date:       dateField(rec),
	}
}

// FromRows converts manual-entry rows to canonical samples.
func FromRows(rows []Row) []model.Sample {
	samples := make([]model.Sample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, model.Sample{
			SequenceID: row.SequenceID,
			Mutations:  SplitMutations(row.Mutations),
			Location:   row.Location,
			Date:       row.Date,
		})
	}
	return samples
}

// ToRow converts a stored sample back to the manual-entry form, joining the
// mutation list with newlines. Used when replaying a history entry.
func ToRow(s model.Sample) Row {
	return Row{
		SequenceID: s.SequenceID,
		Mutations:  strings.Join(s.Mutations, "\n"),
		Location:   s.Location,
		Date:       s.Date,
	}
}

// SplitMutations splits a newline-delimited mutation field and drops blank
// and whitespace-only lines.
func SplitMutations(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// stringField returns the first present key's value as a trimmed string.
func stringField(rec Record, keys ...string) string {
	for _, key := range keys {
		if v, ok := rec[key]; ok && v != nil {
			if s, isStr := v.(string); isStr {
				if s != "" {
					return s
				}
				continue
			}
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

// dateKeys lists the date field spellings seen in imported files, in
// resolution order. Stray whitespace in header names survives CSV parsing,
// so the padded variants are checked too.
var dateKeys = []string{"date", "Date", " date", "date ", " Date", "Date "}

// dateField resolves the date field. Textual values are trimmed;
// non-textual ones are stringified. Absent yields "".
func dateField(rec Record) string {
	for _, key := range dateKeys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr {
			if strings.TrimSpace(s) == "" {
				continue
			}
			return strings.TrimSpace(s)
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// mutationsField accepts either an already-split mutation list or a single
// newline-delimited string.
func mutationsField(v any) []string {
	switch m := v.(type) {
	case nil:
		return nil
	case []string:
		var out []string
		for _, code := range m {
			if strings.TrimSpace(code) == "" {
				continue
			}
			out = append(out, code)
		}
		return out
	case []any:
		var out []string
		for _, item := range m {
			code := fmt.Sprintf("%v", item)
			if strings.TrimSpace(code) == "" {
				continue
			}
			out = append(out, code)
		}
		return out
	case string:
		return SplitMutations(m)
	default:
		return SplitMutations(fmt.Sprintf("%v", m))
	}
}
