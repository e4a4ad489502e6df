package parse_test

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/2beens/gymbuddy/internal/tracker/parse"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumber(t *testing.T) {
	testCases := []struct {
		input string
		want  float64
		found bool
	}{
		{input: "7", want: 7, found: true},
		{input: "+7", want: 7, found: true},
		{input: "-7", want: -7, found: true},
		{input: "7.5", want: 7.5, found: true},
		{input: "7,5", want: 7.5, found: true},
		{input: "40,5 kg", want: 40.5, found: true},
		{input: "~7", want: 7, found: true},
		{input: "7 -", want: 7, found: true},
		{input: "7-10", want: 7, found: true},
		{input: "weight: 42.5kg", want: 42.5, found: true},
		{input: "first 12 then 15", want: 12, found: true},
		{input: "", found: false},
		{input: "no numbers here", found: false},
		{input: "..,,", found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := parse.ExtractNumber(tc.input)
			require.Equal(t, tc.found, ok)
			if tc.found {
				assert.InDelta(t, tc.want, got, 0.0001)
			}
		})
	}
}

func TestExtractNumber_IdempotentOnOwnOutput(t *testing.T) {
	for _, input := range []string{"7", "7,5", "42.5", "-3,25", "170cm"} {
		first, ok := parse.ExtractNumber(input)
		require.True(t, ok)
		second, ok := parse.ExtractNumber(strconv.FormatFloat(first, 'f', -1, 64))
		require.True(t, ok)
		assert.Equal(t, first, second)
	}
}

func TestExtractNumbers(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		maxCount int
		want     []float64
	}{
		{
			name:     "height and weight with units",
			input:    "170cm 65kg",
			maxCount: 2,
			want:     []float64{170, 65},
		},
		{
			name:     "comma separated",
			input:    "170, 65",
			maxCount: 2,
			want:     []float64{170, 65},
		},
		{
			name:     "decimal comma values",
			input:    "170,5 65,3",
			maxCount: 2,
			want:     []float64{170.5, 65.3},
		},
		{
			name:     "single number only",
			input:    "170",
			maxCount: 2,
			want:     []float64{170},
		},
		{
			name:     "more numbers than asked for",
			input:    "1 2 3 4",
			maxCount: 2,
			want:     []float64{1, 2},
		},
		{
			name:     "no limit",
			input:    "1 2 3",
			maxCount: 0,
			want:     []float64{1, 2, 3},
		},
		{
			name:     "nothing numeric",
			input:    "hello there",
			maxCount: 2,
			want:     nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := parse.ExtractNumbers(tc.input, tc.maxCount)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtract_GeneratedInputs(t *testing.T) {
	faker := gofakeit.New(42)

	for i := 0; i < 100; i++ {
		reps := faker.Number(0, 500)
		got, ok := parse.ExtractIntegerStrict(strconv.Itoa(reps))
		require.True(t, ok)
		assert.Equal(t, reps, got)

		weight := float64(faker.Number(0, 20000)) / 100
		input := fmt.Sprintf("%s %s", strconv.FormatFloat(weight, 'f', -1, 64), faker.RandomString([]string{"kg", "lbs", ""}))
		gotWeight, ok := parse.ExtractNumber(input)
		require.True(t, ok, "input: %q", input)
		assert.InDelta(t, weight, gotWeight, 0.0001)
	}
}

func TestExtractIntegerStrict(t *testing.T) {
	testCases := []struct {
		input string
		want  int
		found bool
	}{
		{input: "12", want: 12, found: true},
		{input: "  8  ", want: 8, found: true},
		{input: "0", want: 0, found: true},
		{input: "12.5", found: false},
		{input: "12,5", found: false},
		{input: "+12", found: false},
		{input: "-12", found: false},
		{input: "12 reps", found: false},
		{input: "twelve", found: false},
		{input: "", found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := parse.ExtractIntegerStrict(tc.input)
			require.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
