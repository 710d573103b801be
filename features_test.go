package artcorr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// histSlot returns the feature-vector column for a sanitized tag name.
func histSlot(t *testing.T, tag string) int {
	t.Helper()
	v, err := TagIndex(tag)
	require.NoError(t, err)
	return featureOffset + v
}

// strptr returns a corrections entry.
func strptr(s string) *string { return &s }

func TestExtractSiteFeatures_TheCat(t *testing.T) {
	site := NewTree(theCatSpec())
	embeddings := []int{10, 20}
	corrections := []*string{nil, nil}

	row, label, err := ExtractSiteFeatures(site, embeddings, corrections)
	require.NoError(t, err)

	require.Len(t, row, FeatureWidth)
	assert.Equal(t, float64(10), row[0], "determiner embedding index")
	assert.Equal(t, float64(20), row[1], "noun embedding index")
	assert.Equal(t, float64(1), row[2], "token distance")
	assert.Equal(t, float64(1), row[histSlot(t, "DT")])
	assert.Equal(t, float64(1), row[histSlot(t, "NN")])
	assert.Equal(t, 0, label, "no corrections entry yields label 0")
}

func TestExtractSiteFeatures_CorrectionLabel(t *testing.T) {
	site := NewTree(theCatSpec())
	embeddings := []int{10, 20}

	base, _, err := ExtractSiteFeatures(site, embeddings, []*string{nil, nil})
	require.NoError(t, err)

	row, label, err := ExtractSiteFeatures(site, embeddings, []*string{strptr("an"), nil})
	require.NoError(t, err)
	assert.Equal(t, ClassAN, label)
	assert.Equal(t, base, row, "the label must not change the feature row")
}

func TestExtractSiteFeatures_NoCorrectionsList(t *testing.T) {
	row, label, err := ExtractSiteFeatures(NewTree(theCatSpec()), []int{10, 20}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, label)
	assert.Equal(t, float64(10), row[0])
}

func TestExtractSiteFeatures_UnknownClassName(t *testing.T) {
	_, _, err := ExtractSiteFeatures(NewTree(theCatSpec()), []int{10, 20}, []*string{strptr("these"), nil})
	require.Error(t, err)

	var nameErr *UnknownClassNameError
	require.ErrorAs(t, err, &nameErr)
}

func TestExtractSiteFeatures_FirstNounOnly(t *testing.T) {
	// "the big cat dog": the distance and noun slot must reflect "cat", the
	// first noun, not "dog".
	site := NewTree(phrase("NP",
		leaf("DT", "the", 0),
		leaf("JJ", "big", 1),
		leaf("NN", "cat", 2),
		leaf("NN", "dog", 3),
	))
	row, _, err := ExtractSiteFeatures(site, []int{5, 6, 7, 8}, nil)
	require.NoError(t, err)

	assert.Equal(t, float64(7), row[1], "first noun embedding")
	assert.Equal(t, float64(2), row[2], "distance to first noun")
	assert.Equal(t, float64(2), row[histSlot(t, "NN")], "both nouns counted in histogram")
}

func TestExtractSiteFeatures_FirstDeterminerOnly(t *testing.T) {
	// Two article determiners in one span: only the first is recorded.
	site := NewTree(phrase("NP",
		leaf("DT", "a", 0),
		leaf("DT", "the", 1),
		leaf("NN", "cat", 2),
	))
	row, _, err := ExtractSiteFeatures(site, []int{5, 6, 7}, nil)
	require.NoError(t, err)

	assert.Equal(t, float64(5), row[0])
	assert.Equal(t, float64(2), row[2])
	assert.Equal(t, float64(2), row[histSlot(t, "DT")])
}

func TestExtractSiteFeatures_NounBeforeDeterminer(t *testing.T) {
	// Distance is set whichever of the pair is found second.
	site := NewTree(phrase("NP",
		leaf("NN", "home", 0),
		leaf("IN", "of", 1),
		leaf("DT", "the", 2),
		leaf("NN", "brave", 3),
	))
	row, _, err := ExtractSiteFeatures(site, []int{4, 5, 6, 7}, nil)
	require.NoError(t, err)

	assert.Equal(t, float64(6), row[0], "determiner embedding")
	assert.Equal(t, float64(4), row[1], "first noun precedes the determiner")
	assert.Equal(t, float64(2), row[2], "absolute distance")
}

func TestExtractSiteFeatures_NoDeterminerSilentPassThrough(t *testing.T) {
	// Not a valid site per the locator's contract, but the builder does not
	// re-verify: slot 0 stays 0 and no label is assigned.
	site := NewTree(phrase("NP", leaf("JJ", "big", 0), leaf("NN", "cat", 1)))
	row, label, err := ExtractSiteFeatures(site, []int{9, 10}, []*string{strptr("the"), nil})
	require.NoError(t, err)

	assert.Equal(t, float64(0), row[0])
	assert.Equal(t, float64(10), row[1])
	assert.Equal(t, float64(0), row[2])
	assert.Equal(t, 0, label)
}

func TestExtractSiteFeatures_UnregisteredTagSkipped(t *testing.T) {
	site := NewTree(phrase("NP",
		leaf("DT", "the", 0),
		leaf("-LRB-", "(", 1),
		leaf("NN", "cat", 2),
	))
	row, _, err := ExtractSiteFeatures(site, []int{1, 2, 3}, nil)
	require.NoError(t, err)

	// Histogram bound: only registered tags accumulate.
	sum := 0.0
	for _, v := range row[featureOffset+1:] {
		sum += v
	}
	assert.Equal(t, 2.0, sum, "DT and NN only; the bracket tag is skipped silently")
}

func TestExtractSiteFeatures_DollarTagSanitized(t *testing.T) {
	site := NewTree(phrase("NP",
		leaf("DT", "the", 0),
		leaf("NN", "dog", 1),
		leaf("POS", "'s", 2),
		leaf("PRP$", "its", 3),
	))
	row, _, err := ExtractSiteFeatures(site, []int{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1), row[histSlot(t, "PRP_")])
}

func TestExtractSiteFeatures_EmbeddingIndexOutOfRange(t *testing.T) {
	site := NewTree(theCatSpec())
	_, _, err := ExtractSiteFeatures(site, []int{10}, nil)
	require.Error(t, err)

	var alignErr *AlignmentError
	require.ErrorAs(t, err, &alignErr)
}

func TestExtractFeatures_RowPerSite(t *testing.T) {
	tree := NewTree(phrase("S",
		phrase("NP", leaf("DT", "the", 0), leaf("NN", "cat", 1)),
		phrase("VP",
			leaf("VBD", "saw", 2),
			phrase("NP", leaf("DT", "a", 3), leaf("NN", "dog", 4)),
		),
	))
	embeddings := []int{10, 20, 30, 40, 50}
	corrections := []*string{nil, nil, nil, strptr("the"), nil}

	features, labels, err := ExtractFeatures(tree, embeddings, corrections)
	require.NoError(t, err)

	require.Len(t, features, 2)
	require.Len(t, labels, 2)
	assert.Equal(t, float64(10), features[0][0])
	assert.Equal(t, float64(40), features[1][0])
	assert.Equal(t, []int{0, ClassTHE}, labels)
}

func TestExtractFeatures_InferenceModeNilLabels(t *testing.T) {
	features, labels, err := ExtractFeatures(NewTree(theCatSpec()), []int{10, 20}, nil)
	require.NoError(t, err)
	assert.Len(t, features, 1)
	assert.Nil(t, labels)
}
