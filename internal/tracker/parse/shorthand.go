package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// shorthandRegex captures the quick-add grammar:
//
//	<exercise-text> <reps:digits> [<weight:number>]
//
// e.g. "pushups 15" or "bench press 8 40,5". The exercise text must not
// start with a digit, otherwise "20 60" would split ambiguously.
var shorthandRegex = regexp.MustCompile(`^([^\d\n]+?)\s+(\d+)(?:\s+([\d.,]+))?$`)

// Shorthand is a single-message workout entry, an alternative
// to the guided add-entry dialogue.
type Shorthand struct {
	Exercise string
	Reps     int
	Weight   *float64
}

// ClassifyShorthand decides whether the given text is a one-shot
// "exercise reps [weight]" entry. A malformed weight token degrades to
// "no weight" instead of rejecting the whole match - partial success is
// preferred for the convenience path. Commands (leading slash) never match.
func ClassifyShorthand(text string) (*Shorthand, bool) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "/") {
		return nil, false
	}

	groups := shorthandRegex.FindStringSubmatch(trimmed)
	if groups == nil {
		return nil, false
	}

	reps, err := strconv.Atoi(groups[2])
	if err != nil {
		return nil, false
	}

	sh := &Shorthand{
		Exercise: NormalizeExercise(groups[1]),
		Reps:     reps,
	}

	if groups[3] != "" {
		if weight, ok := ExtractNumber(groups[3]); ok {
			sh.Weight = &weight
		}
	}

	return sh, true
}

// NormalizeExercise produces the exercise key used for grouping,
// everywhere an exercise name enters the system. Aggregations silently
// fragment if any path skips this.
func NormalizeExercise(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
