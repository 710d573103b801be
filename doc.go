// Package artcorr turns sentence-level constituency parse trees,
// word-embedding index lookups, and (for training) human correction labels
// into fixed-width numeric feature vectors for a determiner-article
// classifier, and maps the classifier's predictions back into per-sentence
// correction reports.
//
// # Pipeline
//
// The toolkit operates in two directions:
//
//  1. Build: For each sentence, locate candidate determiner-phrase-with-
//     article (DPA) sites in the parse tree, extract one 39-column feature
//     row per site, and concatenate rows across sentences into a dataset
//     that is persisted to SQLite.
//
//  2. Report: After inference, re-partition the classifier's flat
//     class/confidence stream back into one slot per candidate site per
//     sentence, and serialize the nested report as JSON.
//
// # Usage
//
// Load the four parallel corpora for a partition and build a dataset:
//
//	cfg := artcorr.Config{DataDir: "data", Partition: artcorr.PartitionTrain}
//	corpora, err := artcorr.LoadCorpora(cfg)
//	if err != nil { ... }
//
//	ds, err := artcorr.NewBuilder().Build(corpora)
//
// Decode a flat prediction stream against the same parse-tree corpus:
//
//	report, err := artcorr.PredictionsFromLabels(preds, corpora.Trees)
//	data, err := json.Marshal(report)
//
// # Determinism
//
// Candidate sites are discovered in left-to-right document order by a
// pre-order walk, and sentences are processed strictly in corpus order, so
// the feature matrix, label vector, and report are byte-identical across
// runs on the same input. The report decoder relies on exactly this: it
// re-runs site discovery and consumes one prediction per site, in order.
//
// # Alignment
//
// The text-token, parse-tree, embedding-index, and (optional) corrections
// corpora must be parallel: equal sentence counts, and per sentence one
// entry per tree leaf. Any mismatch fails the whole build with an
// [AlignmentError] before a matrix is produced; there is no partial-success
// mode.
package artcorr
