package artcorr

import "strings"

// TagCount is the size of the closed POS tag set.
const TagCount = 36

// posTags lists the registered Penn Treebank tags in value order: the tag at
// index i has registry value i+1. The "$"-suffixed tags are stored in their
// sanitized form ("PRP_", "WP_") and must be queried that way.
var posTags = [TagCount]string{
	"CC", "CD", "DT", "EX", "FW", "IN", "JJ", "JJR", "JJS", "LS",
	"MD", "NN", "NNS", "NNP", "NNPS", "PDT", "POS", "PRP", "PRP_", "RB",
	"RBR", "RBS", "RP", "SYM", "TO", "UH", "VB", "VBD", "VBG", "VBN",
	"VBP", "VBZ", "WDT", "WP", "WP_", "WRB",
}

// posIndex maps sanitized tag name to its 1-based registry value.
var posIndex = func() map[string]int {
	m := make(map[string]int, len(posTags))
	for i, tag := range posTags {
		m[tag] = i + 1
	}
	return m
}()

// SanitizeTag rewrites "$"-suffixed tags to the registry's naming convention
// ("PRP$" -> "PRP_"). The substitution is an encoding workaround, not a
// semantic distinction.
func SanitizeTag(tag string) string {
	return strings.ReplaceAll(tag, "$", "_")
}

// HasTag reports whether name (in sanitized form) is a registered POS tag.
func HasTag(name string) bool {
	_, ok := posIndex[name]
	return ok
}

// TagIndex returns the 1-based registry value for a sanitized tag name, or
// an UnknownTagError if the name is not registered.
func TagIndex(name string) (int, error) {
	v, ok := posIndex[name]
	if !ok {
		return 0, &UnknownTagError{Tag: name}
	}
	return v, nil
}
