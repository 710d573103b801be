package store

import "time"

// Dataset modes.
const (
	ModeTraining  = "training"
	ModeInference = "inference"
)

// Dataset is one built partition's metadata record.
type Dataset struct {
	ID                 int64
	Partition          string
	Mode               string
	SentenceCount      int
	CorrectedSentences int
	CreatedAt          time.Time
}

// FeatureRow is one candidate site's persisted feature vector. Ordinal is
// the row's position in the dataset-level matrix; Label is nil for
// inference datasets.
type FeatureRow struct {
	ID            int64
	DatasetID     int64
	Ordinal       int
	DetEmbedding  float64
	NounEmbedding float64
	Distance      float64
	Histogram     []float64
	Label         *int
}

// PredictionRow is one candidate site's decoded prediction slot. Class 0
// means no suggestion.
type PredictionRow struct {
	ID            int64
	DatasetID     int64
	SentenceIndex int
	SiteIndex     int
	Class         int
	Confidence    float64
}
