package commands

import (
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Suggest returns the candidate closest to input by Levenshtein distance,
// provided it is within half the input's length.
func Suggest(input string, candidates []string) (string, bool) {
	input = strings.ToLower(input)
	if input == "" || len(candidates) == 0 {
		return "", false
	}

	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	dmp := diffmatchpatch.New()
	best, bestDistance := "", -1
	for _, candidate := range sorted {
		diffs := dmp.DiffMain(input, strings.ToLower(candidate), false)
		distance := dmp.DiffLevenshtein(diffs)
		if bestDistance < 0 || distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}

	if bestDistance > max(1, len(input)/2) {
		return "", false
	}
	return best, true
}
