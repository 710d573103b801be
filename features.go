package artcorr

// Feature vector schema, by column:
//
//	[0]      embedding index of the article-bearing determiner leaf
//	[1]      embedding index of the first noun leaf (NN/NNS/NNP/NNPS)
//	[2]      absolute token-position distance between the two
//	[3..38]  POS histogram over the site's leaf span, one slot per
//	         registered tag in registry-value order
const (
	featureOffset = 2
	// FeatureWidth is the fixed feature-vector length: 3 positional slots
	// plus one histogram slot per registered POS tag.
	FeatureWidth = featureOffset + TagCount + 1
)

// nounTags are the POS tags that qualify a leaf as the site's head noun.
var nounTags = map[string]bool{"NN": true, "NNS": true, "NNP": true, "NNPS": true}

// ExtractSiteFeatures builds the feature row and training label for a
// single candidate site. embeddings holds one embedding index per sentence
// leaf, aligned by SIndex; corrections (nil in inference mode) holds one
// entry per sentence leaf, each either nil or a correction-class name.
//
// The scan is a single left-to-right pass over the site's leaves. Only the
// first article-bearing determiner and the first noun are recorded; the
// distance slot is rewritten whenever both are known, so it stabilizes as
// soon as the later of the two is found. A site with no article leaf keeps
// slot 0 at zero and never receives a label; that is a silent pass-through,
// not a fault.
func ExtractSiteFeatures(site *Node, embeddings []int, corrections []*string) ([]float64, int, error) {
	row := make([]float64, FeatureWidth)
	label := NoSuggestion

	var det, noun *Node
	for _, leaf := range site.Leaves() {
		if leaf.SIndex < 0 || leaf.SIndex >= len(embeddings) {
			return nil, 0, &AlignmentError{
				Corpus:   "embedding index",
				Got:      len(embeddings),
				Want:     leaf.SIndex + 1,
				Sentence: -1,
			}
		}

		// Histogram accumulation; unregistered tags are skipped silently.
		if v, err := TagIndex(SanitizeTag(leaf.POS)); err == nil {
			row[featureOffset+v]++
		}

		if det == nil && leaf.isArticleLeaf() {
			row[0] = float64(embeddings[leaf.SIndex])
			det = leaf
			if corrections != nil && corrections[leaf.SIndex] != nil {
				v, err := ClassByName(*corrections[leaf.SIndex])
				if err != nil {
					return nil, 0, err
				}
				label = v
			}
		} else if noun == nil && nounTags[leaf.POS] {
			row[1] = float64(embeddings[leaf.SIndex])
			noun = leaf
		}

		if det != nil && noun != nil {
			row[2] = float64(absInt(det.SIndex - noun.SIndex))
		}
	}

	return row, label, nil
}

// ExtractFeatures locates the sentence's candidate sites and builds one
// feature row (and, in training mode, one label) per site, in discovery
// order. The labels slice is nil when corrections is nil.
func ExtractFeatures(tree *Node, embeddings []int, corrections []*string) ([][]float64, []int, error) {
	sites := tree.DPASubtrees()
	features := make([][]float64, 0, len(sites))
	var labels []int
	if corrections != nil {
		labels = make([]int, 0, len(sites))
	}

	for _, site := range sites {
		row, label, err := ExtractSiteFeatures(site, embeddings, corrections)
		if err != nil {
			return nil, nil, err
		}
		features = append(features, row)
		if corrections != nil {
			labels = append(labels, label)
		}
	}
	return features, labels, nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
