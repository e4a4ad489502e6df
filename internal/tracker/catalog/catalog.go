// Package catalog holds the built-in exercise catalog shown in the
// inline picker. Freetext exercises are always allowed on top of it,
// the catalog only saves typing for the common ones.
package catalog

import "strings"

// Callback token prefixes and specials used in inline keyboard buttons.
// IDs are kept short since callback payloads have tight size limits.
const (
	CategoryTokenPrefix = "cat:"
	ExerciseTokenPrefix = "ex:"

	TokenCategoryBack  = "cat:back"
	TokenExerciseOther = "ex:other"
	TokenBodyMetrics   = "body:metrics"
	TokenBodyStats     = "body:stats"
)

type Category struct {
	ID    string
	Label string
}

type Exercise struct {
	ID    string
	Title string
}

// Categories in display order.
var Categories = []Category{
	{ID: "arms", Label: "💪 Arms"},
	{ID: "legs", Label: "🦵 Legs"},
	{ID: "core", Label: "🧩 Core"},
	{ID: "backm", Label: "🦴 Back"},
	{ID: "cardio", Label: "🏃 Cardio"},
}

var exercisesByCategory = map[string][]Exercise{
	"legs": {
		{ID: "leg_press", Title: "Leg press"},
		{ID: "abductor", Title: "Hip abduction"},
		{ID: "adductor", Title: "Hip adduction"},
		{ID: "leg_curl", Title: "Leg curl"},
		{ID: "leg_ext", Title: "Leg extension"},
		{ID: "multi_hip", Title: "Glute kickback"},
	},
	"arms": {
		{ID: "hammer_curl", Title: "Hammer curl"},
		{ID: "overhead_ext", Title: "Overhead triceps extension"},
		{ID: "db_press", Title: "Standing dumbbell press"},
		{ID: "db_fly", Title: "Dumbbell fly"},
		{ID: "db_row", Title: "Bent-over dumbbell row"},
	},
	"backm": {
		{ID: "gravitron", Title: "Assisted pull-up"},
		{ID: "seated_row", Title: "Seated lever row"},
	},
	"cardio": {
		{ID: "run", Title: "Running"},
		{ID: "stair", Title: "Stair climber"},
	},
	"core": {
		{ID: "crunch", Title: "Crunches"},
		{ID: "bicycle", Title: "Bicycle crunches"},
		{ID: "knee_crunch", Title: "Knee crunches"},
		{ID: "russian_twist", Title: "Russian twist"},
	},
}

// exercise id -> title, built once at init
var exerciseIndex = func() map[string]string {
	index := make(map[string]string)
	for _, exercises := range exercisesByCategory {
		for _, ex := range exercises {
			index[ex.ID] = ex.Title
		}
	}
	return index
}()

// CategoryByID returns the category for the given id.
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ExercisesFor returns the exercises of a category in display order.
func ExercisesFor(categoryID string) []Exercise {
	return exercisesByCategory[categoryID]
}

// ExerciseTitle resolves an exercise id from a callback token.
func ExerciseTitle(id string) (string, bool) {
	title, ok := exerciseIndex[id]
	return title, ok
}

func CategoryToken(categoryID string) string {
	return CategoryTokenPrefix + categoryID
}

func ExerciseToken(exerciseID string) string {
	return ExerciseTokenPrefix + exerciseID
}

// ParseToken splits a callback token into its prefix and payload.
// "cat:legs" parses to ("cat:", "legs"); tokens without a colon
// come back with an empty prefix.
func ParseToken(token string) (prefix, payload string) {
	i := strings.Index(token, ":")
	if i < 0 {
		return "", token
	}
	return token[:i+1], token[i+1:]
}
