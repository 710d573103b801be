package store

import "encoding/json"

// marshalHistogram converts the POS histogram slots to JSON text for storage.
func marshalHistogram(hist []float64) string {
	if len(hist) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(hist)
	return string(b)
}

// unmarshalHistogram converts JSON text back to histogram slots.
func unmarshalHistogram(s string) []float64 {
	if s == "" || s == "null" {
		return nil
	}
	var hist []float64
	_ = json.Unmarshal([]byte(s), &hist)
	return hist
}
