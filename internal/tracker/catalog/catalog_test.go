package catalog_test

import (
	"testing"

	"github.com/2beens/gymbuddy/internal/tracker/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryByID(t *testing.T) {
	c, ok := catalog.CategoryByID("legs")
	require.True(t, ok)
	assert.Equal(t, "legs", c.ID)

	_, ok = catalog.CategoryByID("wings")
	assert.False(t, ok)
}

func TestEveryCategoryHasExercises(t *testing.T) {
	for _, c := range catalog.Categories {
		exercises := catalog.ExercisesFor(c.ID)
		require.NotEmpty(t, exercises, "category %s", c.ID)
		for _, ex := range exercises {
			title, ok := catalog.ExerciseTitle(ex.ID)
			require.True(t, ok)
			assert.Equal(t, ex.Title, title)
		}
	}
}

func TestExerciseIDsAreUnique(t *testing.T) {
	seen := map[string]string{}
	for _, c := range catalog.Categories {
		for _, ex := range catalog.ExercisesFor(c.ID) {
			if other, clash := seen[ex.ID]; clash {
				t.Fatalf("exercise id %q used by both %q and %q", ex.ID, other, c.ID)
			}
			seen[ex.ID] = c.ID
		}
	}
}

func TestParseToken(t *testing.T) {
	prefix, payload := catalog.ParseToken(catalog.CategoryToken("legs"))
	assert.Equal(t, catalog.CategoryTokenPrefix, prefix)
	assert.Equal(t, "legs", payload)

	prefix, payload = catalog.ParseToken(catalog.ExerciseToken("leg_press"))
	assert.Equal(t, catalog.ExerciseTokenPrefix, prefix)
	assert.Equal(t, "leg_press", payload)

	prefix, payload = catalog.ParseToken("garbage")
	assert.Empty(t, prefix)
	assert.Equal(t, "garbage", payload)
}
