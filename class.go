package artcorr

import "strings"

// Correction-class values. Zero is reserved for "no correction suggested".
const (
	NoSuggestion = 0
	ClassA       = 1
	ClassAN      = 2
	ClassTHE     = 3
)

// classNames maps value-1 to the lowercase serialized class name.
var classNames = [3]string{"a", "an", "the"}

// classValues maps lowercase class name to value.
var classValues = func() map[string]int {
	m := make(map[string]int, len(classNames))
	for i, name := range classNames {
		m[name] = i + 1
	}
	return m
}()

// ClassByName returns the correction-class value for a class name,
// case-insensitively. Fails with an UnknownClassNameError for anything
// outside {a, an, the}.
func ClassByName(name string) (int, error) {
	v, ok := classValues[strings.ToLower(name)]
	if !ok {
		return 0, &UnknownClassNameError{Name: name}
	}
	return v, nil
}

// ClassName returns the lowercase serialized name for a correction-class
// value, failing with an OutOfRangeError outside [1,3]. ClassByName and
// ClassName round-trip for every value in that range.
func ClassName(value int) (string, error) {
	if value < ClassA || value > ClassTHE {
		return "", &OutOfRangeError{Value: value}
	}
	return classNames[value-1], nil
}
