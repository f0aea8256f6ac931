package catalog

import (
	"errors"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"kantong/internal/core"
)

// ErrUnknownLabel is returned when input does not resolve to a catalog entry.
var ErrUnknownLabel = errors.New("unknown label")

// maxDistance is the largest edit distance accepted as a typo.
const maxDistance = 2

// ResolveCategory maps free text typed by the user ("makan", "transprt") to a
// category label.
func ResolveCategory(input string) (string, error) {
	return resolve("category", input, Categories)
}

// ResolvePaymentMethod maps free text typed by the user to a payment method.
func ResolvePaymentMethod(input string) (string, error) {
	return resolve("payment method", input, PaymentMethods)
}

// resolve tries, in order: exact match, unique substring match, then the
// single closest label within maxDistance edits. Emoji prefixes are ignored.
func resolve(field, input string, labels []string) (string, error) {
	needle := normalize(input)
	if needle == "" {
		return "", &core.InputError{Field: field, Value: input, Err: ErrUnknownLabel}
	}

	for _, label := range labels {
		if normalize(label) == needle {
			return label, nil
		}
	}

	var matches []string
	for _, label := range labels {
		if strings.Contains(normalize(label), needle) {
			matches = append(matches, label)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	best, bestDist, tie := "", maxDistance+1, false
	for _, label := range labels {
		for _, word := range candidates(label) {
			d := levenshtein.ComputeDistance(needle, word)
			switch {
			case d < bestDist:
				best, bestDist, tie = label, d, false
			case d == bestDist && label != best:
				tie = true
			}
		}
	}
	if best != "" && !tie {
		return best, nil
	}
	return "", &core.InputError{Field: field, Value: input, Err: ErrUnknownLabel}
}

// candidates returns the whole normalized label and each of its words.
func candidates(label string) []string {
	n := normalize(label)
	return append([]string{n}, strings.Fields(n)...)
}

func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' || r == '&' {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
