package artcorr

import "fmt"

// AlignmentError reports a length mismatch between the parallel corpora,
// either at the sentence-count level or at the per-sentence leaf-count
// level. It always aborts the whole dataset build.
type AlignmentError struct {
	Corpus   string // corpus that disagrees with the parse-tree corpus
	Got      int
	Want     int
	Sentence int // sentence index for leaf-level mismatches, -1 for corpus-level
}

func (e *AlignmentError) Error() string {
	if e.Sentence < 0 {
		return fmt.Sprintf("%s corpus has %d entries, want %d", e.Corpus, e.Got, e.Want)
	}
	return fmt.Sprintf("%s list length %d does not equal tree leaf count %d at sentence %d", e.Corpus, e.Got, e.Want, e.Sentence)
}

// UnknownTagError reports a POS tag absent from the registry. The feature
// scan does not surface it (unregistered tags are skipped silently); it is
// returned only from direct TagIndex lookups.
type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown POS tag %q", e.Tag)
}

// UnknownClassNameError reports a correction-class name outside {a, an, the}.
type UnknownClassNameError struct {
	Name string
}

func (e *UnknownClassNameError) Error() string {
	return fmt.Sprintf("unknown correction class name %q", e.Name)
}

// OutOfRangeError reports a correction-class value outside [1,3].
type OutOfRangeError struct {
	Value int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("correction class value %d out of range [1,3]", e.Value)
}

// InvalidClassError reports a prediction slot whose class value falls
// outside [0,3] during report serialization.
type InvalidClassError struct {
	Class    int
	Sentence int
	Site     int
}

func (e *InvalidClassError) Error() string {
	return fmt.Sprintf("invalid prediction class %d at sentence %d site %d (must be in [0,3])", e.Class, e.Sentence, e.Site)
}
