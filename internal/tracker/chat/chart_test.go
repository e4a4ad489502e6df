package chat_test

import (
	"testing"
	"time"

	"github.com/2beens/gymbuddy/internal/tracker/chat"
	"github.com/2beens/gymbuddy/internal/tracker/stats"

	"github.com/stretchr/testify/assert"
)

func TestBuildChartSeries(t *testing.T) {
	day1 := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	series := chat.BuildChartSeries("bench press", 30, []stats.DailyPoint{
		{Day: day1, TotalReps: 24, TotalVolume: 960, Sets: 3},
		{Day: day2, TotalReps: 16, TotalVolume: 680, Sets: 2},
	})

	assert.Equal(t, "Bench Press: progress over 30 days", series.Title)
	assert.Equal(t, []string{"2024-03-18", "2024-03-19"}, series.Dates)
	assert.Equal(t, []int{24, 16}, series.Reps)
	assert.Equal(t, []float64{960, 680}, series.Volume)
	assert.True(t, series.HasVolume)
}

func TestBuildChartSeries_NoVolume(t *testing.T) {
	day := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

	series := chat.BuildChartSeries("pushups", 7, []stats.DailyPoint{
		{Day: day, TotalReps: 45, TotalVolume: 0, Sets: 3},
	})

	assert.False(t, series.HasVolume)
	assert.Equal(t, []float64{0}, series.Volume)
}

func TestBuildChartSeries_Empty(t *testing.T) {
	series := chat.BuildChartSeries("squats", 30, nil)
	assert.Empty(t, series.Dates)
	assert.Empty(t, series.Reps)
	assert.Empty(t, series.Volume)
	assert.False(t, series.HasVolume)
}
