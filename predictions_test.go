package artcorr

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionsFromLabels_NoSuggestion(t *testing.T) {
	report, err := PredictionsFromLabels(
		[]Prediction{{Class: 0, Confidence: 0.0}},
		[]NodeSpec{theCatSpec()},
	)
	require.NoError(t, err)

	require.Len(t, report, 1)
	require.Len(t, report[0], 1)
	assert.Nil(t, report[0][0])

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `[[null]]`, string(data))
}

func TestPredictionsFromLabels_Suggestion(t *testing.T) {
	report, err := PredictionsFromLabels(
		[]Prediction{{Class: ClassTHE, Confidence: 0.91}},
		[]NodeSpec{theCatSpec()},
	)
	require.NoError(t, err)

	require.Len(t, report, 1)
	require.NotNil(t, report[0][0])
	assert.Equal(t, ClassTHE, report[0][0].Class)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `[[["the",0.91]]]`, string(data))
}

func TestPredictionsFromLabels_CursorAcrossSentences(t *testing.T) {
	trees := []NodeSpec{
		// two sites
		phrase("S",
			phrase("NP", leaf("DT", "the", 0), leaf("NN", "cat", 1)),
			phrase("NP", leaf("DT", "a", 2), leaf("NN", "dog", 3)),
		),
		// zero sites
		phrase("S", leaf("PRP", "she", 0), leaf("VBZ", "sleeps", 1)),
		// one site
		theCatSpec(),
	}
	flat := []Prediction{
		{Class: ClassA, Confidence: 0.7},
		{Class: 0, Confidence: 0.0},
		{Class: ClassAN, Confidence: 0.5},
	}

	report, err := PredictionsFromLabels(flat, trees)
	require.NoError(t, err)

	require.Len(t, report, 3)
	require.Len(t, report[0], 2)
	assert.Empty(t, report[1])
	require.Len(t, report[2], 1)

	assert.Equal(t, ClassA, report[0][0].Class)
	assert.Nil(t, report[0][1])
	assert.Equal(t, ClassAN, report[2][0].Class)
}

func TestPredictionsFromLabels_StreamTooShort(t *testing.T) {
	_, err := PredictionsFromLabels(nil, []NodeSpec{theCatSpec()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted")
}

func TestPredictionsFromLabels_StreamTooLong(t *testing.T) {
	flat := []Prediction{{Class: 0}, {Class: ClassA, Confidence: 0.2}}
	_, err := PredictionsFromLabels(flat, []NodeSpec{theCatSpec()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 entries")
}

func TestReportMarshal_InvalidClass(t *testing.T) {
	report := Report{{{Class: 4, Confidence: 0.5}}}
	_, err := json.Marshal(report)
	require.Error(t, err)

	var classErr *InvalidClassError
	require.ErrorAs(t, err, &classErr)
	assert.Equal(t, 4, classErr.Class)
	assert.Equal(t, 0, classErr.Sentence)
	assert.Equal(t, 0, classErr.Site)
}

func TestReportMarshal_ExplicitZeroClass(t *testing.T) {
	// A non-nil slot with class 0 still serializes as no suggestion.
	report := Report{{{Class: 0, Confidence: 0.3}}}
	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `[[null]]`, string(data))
}

func TestReport_EncodeDecodeSymmetry(t *testing.T) {
	report := Report{
		{nil, {Class: ClassA, Confidence: 0.7}},
		{},
		{nil},
	}
	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded [][]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "null", string(decoded[0][0]))
	assert.JSONEq(t, `["a",0.7]`, string(decoded[0][1]))
	assert.Empty(t, decoded[1])
}

func TestPredictionUnmarshal(t *testing.T) {
	var flat []Prediction
	require.NoError(t, json.Unmarshal([]byte(`[[0,0.0],[3,0.91]]`), &flat))
	require.Len(t, flat, 2)
	assert.Equal(t, Prediction{Class: 0, Confidence: 0.0}, flat[0])
	assert.Equal(t, Prediction{Class: 3, Confidence: 0.91}, flat[1])
}

func TestPredictionUnmarshal_BadShape(t *testing.T) {
	var flat []Prediction
	err := json.Unmarshal([]byte(`[[1]]`), &flat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pair")
}

func TestSaveReport(t *testing.T) {
	var sb strings.Builder
	report := Report{{nil}}
	require.NoError(t, SaveReport(&sb, report))
	assert.Equal(t, "[[null]]\n", sb.String())
}

func TestSaveReport_ValidationFailure(t *testing.T) {
	var sb strings.Builder
	err := SaveReport(&sb, Report{{{Class: -1}}})
	require.Error(t, err)
	assert.Empty(t, sb.String(), "nothing written on validation failure")
}
