package chat

import (
	"fmt"
	"strings"

	"github.com/2beens/gymbuddy/internal/tracker/stats"
)

// ChartSeries is the render-ready form of a daily series: parallel
// sequences of day labels, reps and volume. The renderer decides how to
// draw it, HasVolume just says whether a second axis is worth plotting.
type ChartSeries struct {
	Title     string    `json:"title"`
	Dates     []string  `json:"dates"`
	Reps      []int     `json:"reps"`
	Volume    []float64 `json:"volume"`
	HasVolume bool      `json:"hasVolume"`
}

// BuildChartSeries flattens a daily series into the renderer input.
func BuildChartSeries(exercise string, days int, series []stats.DailyPoint) ChartSeries {
	chart := ChartSeries{
		Title:  fmt.Sprintf("%s: progress over %d days", titleCase(exercise), days),
		Dates:  make([]string, 0, len(series)),
		Reps:   make([]int, 0, len(series)),
		Volume: make([]float64, 0, len(series)),
	}
	for _, point := range series {
		chart.Dates = append(chart.Dates, point.Day.Format("2006-01-02"))
		chart.Reps = append(chart.Reps, point.TotalReps)
		chart.Volume = append(chart.Volume, point.TotalVolume)
		if point.TotalVolume > 0 {
			chart.HasVolume = true
		}
	}
	return chart
}

func chartCaption(exercise string, days int, hasVolume bool) string {
	caption := fmt.Sprintf("%s — %d days\nLine 1: reps/day", titleCase(exercise), days)
	if hasVolume {
		caption += ", line 2: volume (reps×weight)"
	}
	return caption
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
