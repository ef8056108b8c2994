package crimestats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// OffenseBurglary is the offense charted by default.
const OffenseBurglary = "Burglary"

// Record is one year of statistics. Counts holds every numeric offense
// column of the response, Burglary included.
type Record struct {
	DataYear int
	Counts   map[string]float64
}

// Burglary returns the burglary count for the year.
func (r Record) Burglary() float64 {
	return r.Counts[OffenseBurglary]
}

// Value returns the count for offense, or 0 when the column is absent.
func (r Record) Value(offense string) float64 {
	return r.Counts[offense]
}

// Offenses returns the offense names present in the record, sorted.
func (r Record) Offenses() []string {
	names := make([]string, 0, len(r.Counts))
	for name := range r.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnmarshalJSON decodes a flat record object. data_year may be a number
// or a numeric string; non-numeric columns other than data_year are ignored.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	yearRaw, ok := raw["data_year"]
	if !ok {
		return fmt.Errorf("record missing data_year")
	}
	year, err := decodeNumber(yearRaw)
	if err != nil {
		return fmt.Errorf("data_year: %w", err)
	}

	counts := make(map[string]float64, len(raw)-1)
	for name, v := range raw {
		if name == "data_year" {
			continue
		}
		if n, err := decodeNumber(v); err == nil {
			counts[name] = n
		}
	}

	*r = Record{DataYear: int(year), Counts: counts}
	return nil
}

// MarshalJSON writes the record back in the backend's flat shape so cached
// entries decode exactly like fresh responses.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Counts)+1)
	for name, v := range r.Counts {
		out[name] = v
	}
	out["data_year"] = r.DataYear
	return json.Marshal(out)
}

func decodeNumber(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.ParseFloat(s, 64)
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// sortByYear orders records chronologically, dropping duplicate years
// (the first occurrence wins).
func sortByYear(records []Record) []Record {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DataYear < records[j].DataYear
	})
	out := records[:0]
	for _, r := range records {
		if len(out) > 0 && out[len(out)-1].DataYear == r.DataYear {
			continue
		}
		out = append(out, r)
	}
	return out
}
