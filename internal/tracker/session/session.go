package session

// Kind says which guided flow a session belongs to.
type Kind string

const (
	// KindEntryCapture is the multi-step add-entry dialogue:
	// exercise -> reps -> optional weight.
	KindEntryCapture Kind = "entry_capture"
	// KindProgressArgs collects "<exercise> [days]" for the progress summary.
	KindProgressArgs Kind = "progress_args"
	// KindChartArgs collects "<exercise> [days]" for the chart.
	KindChartArgs Kind = "chart_args"
	// KindBodyMetrics collects a "height weight" pair.
	KindBodyMetrics Kind = "body_metrics"
)

func (k Kind) String() string {
	return string(k)
}

type State int

const (
	StateAwaitingExercise State = iota + 1
	StateAwaitingReps
	StateAwaitingWeight
	// StateAwaitingArgs is the single state of the single-turn kinds.
	StateAwaitingArgs
)

// Session is the in-progress conversation state of one user. Exactly one
// live session per user; a newly started guided flow replaces it.
// Sessions are ephemeral, they do not survive a process restart.
type Session struct {
	UserID int64
	ChatID int64
	Kind   Kind
	State  State

	// scratch fields of the entry-capture flow
	Exercise string
	Reps     int
}

func NewEntryCapture(userID, chatID int64) *Session {
	return &Session{
		UserID: userID,
		ChatID: chatID,
		Kind:   KindEntryCapture,
		State:  StateAwaitingExercise,
	}
}

func NewProgressArgs(userID, chatID int64) *Session {
	return &Session{
		UserID: userID,
		ChatID: chatID,
		Kind:   KindProgressArgs,
		State:  StateAwaitingArgs,
	}
}

func NewChartArgs(userID, chatID int64) *Session {
	return &Session{
		UserID: userID,
		ChatID: chatID,
		Kind:   KindChartArgs,
		State:  StateAwaitingArgs,
	}
}

func NewBodyMetrics(userID, chatID int64) *Session {
	return &Session{
		UserID: userID,
		ChatID: chatID,
		Kind:   KindBodyMetrics,
		State:  StateAwaitingArgs,
	}
}
