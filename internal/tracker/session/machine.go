package session

import (
	"strings"

	"github.com/2beens/gymbuddy/internal/tracker/parse"
)

const (
	DefaultProgressDays = 7
	DefaultChartDays    = 30

	minExerciseNameLen = 2
)

// cancellation and skip keywords, checked case-insensitively,
// english and russian variants as supported by the original bot
var (
	cancelKeywords = map[string]struct{}{
		"cancel": {},
		"back":   {},
		"отмена": {},
		"назад":  {},
	}
	skipKeywords = map[string]struct{}{
		"skip":       {},
		"пропустить": {},
	}
)

type Effect int

const (
	// EffectPrompt: send the prompt and keep waiting (the state may have advanced)
	EffectPrompt Effect = iota + 1
	// EffectCommit: the session produced a payload and is done
	EffectCommit
	// EffectCancel: the user backed out, nothing is committed
	EffectCancel
)

// Prompt identifies which message the bot layer should send;
// the machine itself stays free of user-facing text.
type Prompt int

const (
	PromptNone Prompt = iota
	PromptExerciseTooShort
	PromptAskReps
	PromptRepsInvalid
	PromptAskWeight
	PromptWeightInvalid
	PromptBodyNeedTwoNumbers
	PromptChartNeedExercise
)

// EntryDraft is a fully collected workout entry, ready to be stored.
type EntryDraft struct {
	Exercise string
	Reps     int
	Weight   *float64
}

// BodyDraft is a collected height/weight measurement pair.
type BodyDraft struct {
	HeightCm float64
	WeightKg float64
}

// QueryArgs are the collected report arguments: an optional exercise
// filter (empty means all exercises) and a trailing day count.
type QueryArgs struct {
	Exercise string
	Days     int
}

// Outcome is the result of advancing a session with one user input.
// Exactly one of the payload fields is set when Effect is EffectCommit.
type Outcome struct {
	Effect Effect
	Prompt Prompt

	Entry    *EntryDraft
	Body     *BodyDraft
	Progress *QueryArgs
	Chart    *QueryArgs
}

func promptOutcome(p Prompt) Outcome {
	return Outcome{Effect: EffectPrompt, Prompt: p}
}

// IsCancelKeyword reports whether the text is a cancellation keyword.
// Cancellation is recognized before any storage call is made for a turn.
func IsCancelKeyword(text string) bool {
	_, ok := cancelKeywords[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

func isSkipKeyword(text string) bool {
	_, ok := skipKeywords[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// Advance runs one input through the session state machine. It is a pure
// transition function: it mutates only the given session and performs no
// storage or transport calls, which keeps every flow unit-testable.
func Advance(s *Session, input string) Outcome {
	if IsCancelKeyword(input) {
		return Outcome{Effect: EffectCancel}
	}

	switch s.Kind {
	case KindEntryCapture:
		return advanceEntryCapture(s, input)
	case KindProgressArgs:
		args := ParseQueryArgs(input, DefaultProgressDays)
		return Outcome{Effect: EffectCommit, Progress: &args}
	case KindChartArgs:
		args := ParseQueryArgs(input, DefaultChartDays)
		if args.Exercise == "" {
			return promptOutcome(PromptChartNeedExercise)
		}
		return Outcome{Effect: EffectCommit, Chart: &args}
	case KindBodyMetrics:
		return advanceBodyMetrics(input)
	default:
		return Outcome{Effect: EffectCancel}
	}
}

func advanceEntryCapture(s *Session, input string) Outcome {
	switch s.State {
	case StateAwaitingExercise:
		// a full shorthand line short-circuits the guided flow
		if sh, ok := parse.ClassifyShorthand(input); ok {
			return Outcome{
				Effect: EffectCommit,
				Entry: &EntryDraft{
					Exercise: sh.Exercise,
					Reps:     sh.Reps,
					Weight:   sh.Weight,
				},
			}
		}

		name := strings.TrimSpace(input)
		if len([]rune(name)) < minExerciseNameLen {
			return promptOutcome(PromptExerciseTooShort)
		}

		s.Exercise = parse.NormalizeExercise(name)
		s.State = StateAwaitingReps
		return promptOutcome(PromptAskReps)

	case StateAwaitingReps:
		reps, ok := parse.ExtractIntegerStrict(input)
		if !ok {
			return promptOutcome(PromptRepsInvalid)
		}
		s.Reps = reps
		s.State = StateAwaitingWeight
		return promptOutcome(PromptAskWeight)

	case StateAwaitingWeight:
		draft := &EntryDraft{
			Exercise: s.Exercise,
			Reps:     s.Reps,
		}

		if isSkipKeyword(input) {
			return Outcome{Effect: EffectCommit, Entry: draft}
		}
		if strings.TrimSpace(input) == "0" {
			zero := 0.0
			draft.Weight = &zero
			return Outcome{Effect: EffectCommit, Entry: draft}
		}
		weight, ok := parse.ExtractNumber(input)
		if !ok {
			return promptOutcome(PromptWeightInvalid)
		}
		draft.Weight = &weight
		return Outcome{Effect: EffectCommit, Entry: draft}

	default:
		return promptOutcome(PromptExerciseTooShort)
	}
}

func advanceBodyMetrics(input string) Outcome {
	numbers := parse.ExtractNumbers(input, 2)
	if len(numbers) < 2 {
		return promptOutcome(PromptBodyNeedTwoNumbers)
	}
	return Outcome{
		Effect: EffectCommit,
		Body: &BodyDraft{
			HeightCm: numbers[0],
			WeightKg: numbers[1],
		},
	}
}

// ParseQueryArgs splits report arguments "<exercise> [days]": when the last
// whitespace-separated token is all digits it is the day count, the rest is
// the (possibly empty) exercise filter, normalized with the same rule used
// at entry capture.
func ParseQueryArgs(text string, defaultDays int) QueryArgs {
	args := QueryArgs{Days: defaultDays}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return args
	}

	last := fields[len(fields)-1]
	if days, ok := parse.ExtractIntegerStrict(last); ok {
		args.Days = days
		fields = fields[:len(fields)-1]
	}

	args.Exercise = parse.NormalizeExercise(strings.Join(fields, " "))
	return args
}
