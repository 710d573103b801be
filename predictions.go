package artcorr

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Prediction is one entry of the classifier's flat output stream: a
// correction-class value (0 for no suggestion) and its confidence. The
// interchange form is a two-element array [class, confidence].
type Prediction struct {
	Class      int
	Confidence float64
}

// UnmarshalJSON decodes the [class, confidence] pair form.
func (p *Prediction) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("prediction must be a [class, confidence] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("prediction must be a [class, confidence] pair, got %d elements", len(pair))
	}
	p.Class = int(pair[0])
	p.Confidence = pair[1]
	return nil
}

// Suggestion is one report slot with a correction to apply. A nil slot in a
// Report means "no suggestion" for that site.
type Suggestion struct {
	Class      int
	Confidence float64
}

// Report is the nested per-sentence prediction structure: one entry per
// sentence, one slot per candidate site, in site-discovery order.
type Report [][]*Suggestion

// PredictionsFromLabels re-partitions the classifier's flat prediction
// stream back into one slot sequence per sentence. Site counts are
// recovered by re-running the candidate-site locator on the same parse-tree
// corpus the dataset was built from; sentence i consumes exactly that many
// consecutive stream entries. Class 0 becomes a nil slot. The stream length
// must equal the total site count — the ordering contract holds by
// construction, so a mismatch means the stream and corpus diverged.
func PredictionsFromLabels(flat []Prediction, trees []NodeSpec) (Report, error) {
	report := make(Report, 0, len(trees))

	cursor := 0
	for i, spec := range trees {
		sites := NewTree(spec).DPASubtrees()
		if cursor+len(sites) > len(flat) {
			return nil, fmt.Errorf("prediction stream exhausted at sentence %d: need %d more entries, have %d",
				i, len(sites), len(flat)-cursor)
		}

		slots := make([]*Suggestion, 0, len(sites))
		for range sites {
			p := flat[cursor]
			cursor++
			if p.Class == NoSuggestion {
				slots = append(slots, nil)
				continue
			}
			slots = append(slots, &Suggestion{Class: p.Class, Confidence: p.Confidence})
		}
		report = append(report, slots)
	}

	if cursor != len(flat) {
		return nil, fmt.Errorf("prediction stream has %d entries but sentences carry %d candidate sites",
			len(flat), cursor)
	}
	return report, nil
}

// MarshalJSON serializes the report: null per no-suggestion slot, a
// two-element [lowercase class name, confidence] array otherwise. A slot
// class outside [0,3] fails with an InvalidClassError; confidence is
// carried through unchanged.
func (r Report) MarshalJSON() ([]byte, error) {
	out := make([][]json.RawMessage, len(r))
	for si, sentence := range r {
		slots := make([]json.RawMessage, len(sentence))
		for ti, s := range sentence {
			if s == nil {
				slots[ti] = json.RawMessage("null")
				continue
			}
			if s.Class < NoSuggestion || s.Class > ClassTHE {
				return nil, &InvalidClassError{Class: s.Class, Sentence: si, Site: ti}
			}
			if s.Class == NoSuggestion {
				slots[ti] = json.RawMessage("null")
				continue
			}
			name, err := ClassName(s.Class)
			if err != nil {
				return nil, err
			}
			pair, err := json.Marshal([]any{name, s.Confidence})
			if err != nil {
				return nil, err
			}
			slots[ti] = pair
		}
		out[si] = slots
	}
	return json.Marshal(out)
}

// LoadPredictions reads a flat prediction stream from a JSON file of
// [class, confidence] pairs.
func LoadPredictions(path string) ([]Prediction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read predictions: %w", err)
	}
	var flat []Prediction
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("decode predictions %s: %w", path, err)
	}
	return flat, nil
}

// SaveReport validates and writes the report as a JSON document.
func SaveReport(w io.Writer, report Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
