package normalize

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// ReadRecordsCSV parses a header-row CSV into records keyed by the header
// cells. Header names are kept verbatim, whitespace included, so the date
// key resolution can see padded spellings. Rows shorter than the header are
// padded with empty strings.
func ReadRecordsCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "records: read csv header")
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "records: read csv row")
		}

		rec := make(Record, len(header))
		for i, key := range header {
			if i < len(row) {
				rec[key] = row[i]
			} else {
				rec[key] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadRecordsJSON parses a JSON array of objects into records.
func ReadRecordsJSON(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, eris.Wrap(err, "records: decode json")
	}
	return records, nil
}
