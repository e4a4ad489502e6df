package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/gymbuddy/internal/tracker/catalog"
	"github.com/2beens/gymbuddy/internal/tracker/repo"
	"github.com/2beens/gymbuddy/internal/tracker/session"
	"github.com/2beens/gymbuddy/internal/tracker/stats"
)

const (
	msgWelcome = "Hey! I track your workouts.\nPick an action 👇"
	msgMenu    = "Menu is open 👇"
	msgHelp    = "How to use me:\n" +
		"• /add — step by step: exercise → reps → (optional) weight.\n" +
		"• Quick add: just send 'pushups 15' or 'bench press 8 40'.\n" +
		"• /progress [exercise] [days] — e.g.: /progress pushups 30.\n" +
		"• /chart <exercise> [days] — reps and volume chart. Example: /chart squats 30."

	msgPickCategory     = "Pick an exercise category or tap \"Other\" and type the name:"
	msgQuickAddHint     = "Tip: you can also send it in one line, e.g. \"squats 20 60\"."
	msgTypeExerciseName = "Type the exercise name (e.g. pushups)."
	msgAskReps          = "How many reps? (whole number)"
	msgAskWeight        = "Weight? (kg, 0 is fine, or type 'skip')"
	msgEntrySaved       = "Done! Set saved ✅"
	msgCancelled        = "Okay, cancelled."

	msgExerciseTooShort = "That name is too short. Try again."
	msgRepsInvalid      = "I need a whole number of reps, like 12."
	msgWeightInvalid    = "Weight must be a number (like 42.5), or type 'skip'."
	msgBodyNeedNumbers  = "I need two numbers: height (cm) and weight (kg). Example: 170 65"
	msgChartNeedName    = "I need an exercise name, e.g.: squats 30"

	msgProgressPrompt = "Send: <exercise> [days]\nFor example: squats 7\n(type 'cancel' to leave)"
	msgChartPrompt    = "Send: <exercise> [days]\nFor example: squats 30\n(type 'cancel' to leave)"
	msgBodyPrompt     = "Send height and weight separated by a space (e.g.: 170 65). " +
		"Forms like \"170cm 65kg\" or \"170, 65\" work too."

	msgNoData         = "No data yet. Add a set with /add or quick add."
	msgNoChartData    = "No data for that exercise in the chosen period."
	msgNoMeasurements = "No measurements yet. Add one via 📐 Height/weight."
	msgStorageTrouble = "Something went wrong on my side, your input was not saved. Please try again."

	msgUnknownCategory = "Unknown category"
	msgUnknownExercise = "Unknown exercise"
	msgFallbackHint    = "I did not get that. Try /add, /progress or /chart, or send e.g. \"pushups 15\"."
)

// prompt texts of the session machine outcomes
var promptTexts = map[session.Prompt]string{
	session.PromptExerciseTooShort:   msgExerciseTooShort,
	session.PromptAskReps:            msgAskReps,
	session.PromptRepsInvalid:        msgRepsInvalid,
	session.PromptAskWeight:          msgAskWeight,
	session.PromptWeightInvalid:      msgWeightInvalid,
	session.PromptBodyNeedTwoNumbers: msgBodyNeedNumbers,
	session.PromptChartNeedExercise:  msgChartNeedName,
}

func promptText(p session.Prompt) string {
	if text, ok := promptTexts[p]; ok {
		return text
	}
	return msgFallbackHint
}

// InlineButton is one tappable button carrying a callback token.
type InlineButton struct {
	Text string `json:"text"`
	Data string `json:"data"`
}

// InlineKeyboard is rows of buttons, as rendered by the transport.
type InlineKeyboard [][]InlineButton

func mainMenuKeyboard() InlineKeyboard {
	return InlineKeyboard{
		{{Text: "➕ Add set", Data: "add"}},
		{{Text: "📈 Progress", Data: "progress"}},
		{{Text: "🖼️ Chart", Data: "chart"}},
		{{Text: "📏 Body", Data: "body"}},
		{{Text: "❓ Help", Data: "help"}},
	}
}

// categoriesKeyboard lays categories out two per row, with the
// freetext escape hatch at the bottom.
func categoriesKeyboard() InlineKeyboard {
	var kb InlineKeyboard
	var row []InlineButton
	for _, c := range catalog.Categories {
		row = append(row, InlineButton{Text: c.Label, Data: catalog.CategoryToken(c.ID)})
		if len(row) == 2 {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}
	kb = append(kb, []InlineButton{{Text: "✍️ Other", Data: catalog.TokenExerciseOther}})
	return kb
}

func exercisesKeyboard(categoryID string) InlineKeyboard {
	var kb InlineKeyboard
	var row []InlineButton
	for _, ex := range catalog.ExercisesFor(categoryID) {
		row = append(row, InlineButton{Text: ex.Title, Data: catalog.ExerciseToken(ex.ID)})
		if len(row) == 2 {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}
	kb = append(kb, []InlineButton{
		{Text: "⬅️ Back to categories", Data: catalog.TokenCategoryBack},
		{Text: "✍️ Other", Data: catalog.TokenExerciseOther},
	})
	return kb
}

func bodyMenuKeyboard() InlineKeyboard {
	return InlineKeyboard{
		{{Text: "📐 Height/weight", Data: catalog.TokenBodyMetrics}},
		{{Text: "📊 Stats", Data: catalog.TokenBodyStats}},
	}
}

// BotCommand describes one slash command for transport-side registration.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// BotCommands is the command list the transport should register.
func BotCommands() []BotCommand {
	return []BotCommand{
		{Command: "start", Description: "Main menu"},
		{Command: "menu", Description: "Open the menu"},
		{Command: "faq", Description: "Help"},
		{Command: "add", Description: "Add a set"},
		{Command: "progress", Description: "Progress summary"},
		{Command: "chart", Description: "Exercise chart"},
		{Command: "help", Description: "Usage tips"},
	}
}

func formatSummary(summaries []stats.ExerciseSummary, recent []repo.Entry, days int) string {
	lines := []string{fmt.Sprintf("Summary for the last %d days:", days)}
	for _, s := range summaries {
		lines = append(lines, fmt.Sprintf("• %s: %d reps in %d sets", s.Exercise, s.TotalReps, s.Sets))
	}
	if len(recent) > 0 {
		lines = append(lines, "", "Recent sets:")
		for _, e := range recent {
			line := fmt.Sprintf("• %s: %d reps", formatWhen(e.CreatedAt), e.Reps)
			if e.Weight != nil {
				line += fmt.Sprintf(", %s kg", formatNumber(*e.Weight))
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func formatMeasurementHistory(measurements []repo.BodyMeasurement) string {
	lines := []string{"📊 Measurement history (last 10):"}
	for _, m := range measurements {
		lines = append(lines, "• "+formatMeasurement(m))
	}
	return strings.Join(lines, "\n")
}

func formatMeasurement(m repo.BodyMeasurement) string {
	heightText := "—"
	if m.HeightCm != nil {
		heightText = formatNumber(*m.HeightCm) + " cm"
	}
	weightText := "—"
	if m.WeightKg != nil {
		weightText = formatNumber(*m.WeightKg) + " kg"
	}
	return fmt.Sprintf("%s: %s, %s", formatWhen(m.CreatedAt), heightText, weightText)
}

func formatWhen(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// formatNumber renders a float without a trailing ".0" for whole values.
func formatNumber(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
