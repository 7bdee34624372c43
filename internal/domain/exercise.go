package domain

// Exercise names accepted when logging a workout.
const (
	ExerciseSquat         = "Squat"
	ExerciseBenchPress    = "Bench Press"
	ExerciseDeadlift      = "Deadlift"
	ExerciseOverheadPress = "Overhead Press"
	ExercisePullUp        = "Pull-up"
	ExerciseBarbellRow    = "Barbell Row"
	ExerciseDumbbellCurl  = "Dumbbell Curl"
	ExerciseOther         = "Other"
)

var exerciseCatalog = []string{
	ExerciseSquat,
	ExerciseBenchPress,
	ExerciseDeadlift,
	ExerciseOverheadPress,
	ExercisePullUp,
	ExerciseBarbellRow,
	ExerciseDumbbellCurl,
	ExerciseOther,
}

// ExerciseCatalog returns a copy of the accepted exercise names in display order.
func ExerciseCatalog() []string {
	out := make([]string, len(exerciseCatalog))
	copy(out, exerciseCatalog)
	return out
}

// IsKnownExercise reports whether name is part of the catalog.
func IsKnownExercise(name string) bool {
	for _, e := range exerciseCatalog {
		if e == name {
			return true
		}
	}
	return false
}
