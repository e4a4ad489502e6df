package stats

import (
	"context"
	"sort"
	"time"

	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/internal/tracker/repo"

	"go.opentelemetry.io/otel/attribute"
)

// ExerciseSummary aggregates all sets of one exercise within a window.
type ExerciseSummary struct {
	Exercise  string `json:"exercise"`
	TotalReps int    `json:"totalReps"`
	Sets      int    `json:"sets"`
}

// DailyPoint is one calendar day of a time series. Day is truncated to
// midnight UTC. Volume is the sum of reps*weight over the day's sets,
// sets without a weight contribute zero.
type DailyPoint struct {
	Day         time.Time `json:"day"`
	TotalReps   int       `json:"totalReps"`
	TotalVolume float64   `json:"totalVolume"`
	Sets        int       `json:"sets"`
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=stats_test

type entriesRepo interface {
	ListSince(ctx context.Context, userID int64, exercise string, since time.Time) ([]repo.Entry, error)
	Recent(ctx context.Context, userID int64, exercise string, limit int) ([]repo.Entry, error)
}

// Analyzer computes the report aggregations over raw entries. All
// windows are computed from an explicit `now` so results are
// deterministic and testable.
type Analyzer struct {
	repo entriesRepo
}

func NewAnalyzer(repo entriesRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// Summarize returns the per-exercise totals of the last `days` days,
// ordered by total reps descending, ties broken by exercise name.
// An empty exercise summarizes all of the user's exercises.
func (a *Analyzer) Summarize(
	ctx context.Context,
	userID int64,
	exercise string,
	days int,
	now time.Time,
) (_ []ExerciseSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.tracker.summarize")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.String("exercise", exercise))
	span.SetAttributes(attribute.Int("days", days))

	since := now.AddDate(0, 0, -days)
	entries, err := a.repo.ListSince(ctx, userID, exercise, since)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*ExerciseSummary)
	for _, entry := range entries {
		summary, ok := totals[entry.Exercise]
		if !ok {
			summary = &ExerciseSummary{Exercise: entry.Exercise}
			totals[entry.Exercise] = summary
		}
		summary.TotalReps += entry.Reps
		summary.Sets++
	}

	summaries := make([]ExerciseSummary, 0, len(totals))
	for _, summary := range totals {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalReps != summaries[j].TotalReps {
			return summaries[i].TotalReps > summaries[j].TotalReps
		}
		return summaries[i].Exercise < summaries[j].Exercise
	})

	return summaries, nil
}

// RecentEntries returns the latest `limit` sets of one exercise,
// newest first.
func (a *Analyzer) RecentEntries(
	ctx context.Context,
	userID int64,
	exercise string,
	limit int,
) (_ []repo.Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.tracker.recentEntries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.String("exercise", exercise))
	span.SetAttributes(attribute.Int("limit", limit))

	return a.repo.Recent(ctx, userID, exercise, limit)
}

// DailySeries buckets the last `days` days of entries into calendar
// days (UTC), oldest first. Days without entries are absent rather
// than zero-filled. An empty exercise covers all exercises.
func (a *Analyzer) DailySeries(
	ctx context.Context,
	userID int64,
	exercise string,
	days int,
	now time.Time,
) (_ []DailyPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.tracker.dailySeries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.String("exercise", exercise))
	span.SetAttributes(attribute.Int("days", days))

	since := now.AddDate(0, 0, -days)
	entries, err := a.repo.ListSince(ctx, userID, exercise, since)
	if err != nil {
		return nil, err
	}

	day2point := make(map[time.Time]*DailyPoint)
	for _, entry := range entries {
		day := entry.CreatedAt.UTC().Truncate(24 * time.Hour)
		point, ok := day2point[day]
		if !ok {
			point = &DailyPoint{Day: day}
			day2point[day] = point
		}
		point.TotalReps += entry.Reps
		point.Sets++
		if entry.Weight != nil {
			point.TotalVolume += float64(entry.Reps) * *entry.Weight
		}
	}

	series := make([]DailyPoint, 0, len(day2point))
	for _, point := range day2point {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Day.Before(series[j].Day)
	})

	return series, nil
}
