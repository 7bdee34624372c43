package service

import "alcyxob/liftlog/internal/domain"

// ExerciseSeries holds parallel per-entry series for one exercise, ready for charting.
// The three slices always have the same length.
type ExerciseSeries struct {
	Dates   []string  `json:"dates"`
	Weights []float64 `json:"weights"`
	Reps    []int     `json:"reps"`
}

// ProgressData maps an exercise name to its series.
type ProgressData map[string]*ExerciseSeries

// AggregateProgress groups entries by exact exercise name. Each group keeps the
// encounter order of entries, so date-ascending input yields date-ascending
// series. Empty input yields an empty, non-nil map.
func AggregateProgress(entries []domain.WorkoutEntry) ProgressData {
	data := make(ProgressData)
	for i := range entries {
		e := &entries[i]
		series, ok := data[e.Exercise]
		if !ok {
			series = &ExerciseSeries{Dates: []string{}, Weights: []float64{}, Reps: []int{}}
			data[e.Exercise] = series
		}
		series.Dates = append(series.Dates, e.CalendarDate())
		series.Weights = append(series.Weights, e.Weight)
		series.Reps = append(series.Reps, e.Reps)
	}
	return data
}
