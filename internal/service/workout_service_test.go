package service

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestWorkoutService(t *testing.T) (*workoutService, *fakeUserRepo, *fakeWorkoutRepo, *domain.User) {
	t.Helper()
	users := newFakeUserRepo()
	workouts := &fakeWorkoutRepo{}
	owner := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	_, err := users.Create(context.Background(), owner)
	require.NoError(t, err)

	svc := &workoutService{
		userRepo:    users,
		workoutRepo: workouts,
		now:         func() time.Time { return time.Date(2024, 2, 1, 7, 15, 0, 0, time.UTC) },
	}
	return svc, users, workouts, owner
}

func TestLogWorkout_StoresEntry(t *testing.T) {
	svc, _, workouts, owner := newTestWorkoutService(t)

	entry, err := svc.LogWorkout(context.Background(), owner.ID, LogWorkoutInput{
		Exercise: "Deadlift",
		Reps:     3,
		Weight:   0,
		Notes:    "  belt on  ",
	})
	require.NoError(t, err)

	assert.False(t, entry.ID.IsZero())
	assert.Equal(t, owner.ID, entry.OwnerID)
	assert.Equal(t, time.Date(2024, 2, 1, 7, 15, 0, 0, time.UTC), entry.Date)
	require.NotNil(t, entry.Notes)
	assert.Equal(t, "  belt on  ", *entry.Notes, "notes are stored as submitted")
	assert.Len(t, workouts.entries, 1)
}

func TestLogWorkout_EmptyNotesAreAbsent(t *testing.T) {
	svc, _, _, owner := newTestWorkoutService(t)

	entry, err := svc.LogWorkout(context.Background(), owner.ID, LogWorkoutInput{Exercise: "Other", Reps: 10, Weight: 12.5})
	require.NoError(t, err)
	assert.Nil(t, entry.Notes)

	entry, err = svc.LogWorkout(context.Background(), owner.ID, LogWorkoutInput{Exercise: "Other", Reps: 10, Weight: 12.5, Notes: "   "})
	require.NoError(t, err)
	require.NotNil(t, entry.Notes)
	assert.Equal(t, "   ", *entry.Notes)
}

func TestLogWorkout_Validation(t *testing.T) {
	svc, _, workouts, owner := newTestWorkoutService(t)

	tests := []struct {
		name  string
		input LogWorkoutInput
		want  error
	}{
		{"unknown exercise", LogWorkoutInput{Exercise: "Zercher Squat", Reps: 5, Weight: 60}, ErrUnknownExercise},
		{"zero reps", LogWorkoutInput{Exercise: "Squat", Reps: 0, Weight: 60}, ErrInvalidReps},
		{"negative weight", LogWorkoutInput{Exercise: "Squat", Reps: 5, Weight: -1}, ErrInvalidWeight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.LogWorkout(context.Background(), owner.ID, tc.input)
			require.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, workouts.entries)
}

func TestLogWorkout_UnknownOwner(t *testing.T) {
	svc, _, workouts, _ := newTestWorkoutService(t)

	_, err := svc.LogWorkout(context.Background(), primitive.NewObjectID(), LogWorkoutInput{Exercise: "Squat", Reps: 5, Weight: 60})
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, workouts.entries)
}

func TestLogWorkout_StoreFailure(t *testing.T) {
	svc, _, workouts, owner := newTestWorkoutService(t)
	workouts.createErr = errors.New("boom")

	_, err := svc.LogWorkout(context.Background(), owner.ID, LogWorkoutInput{Exercise: "Squat", Reps: 5, Weight: 60})
	require.ErrorIs(t, err, workouts.createErr)
}

func TestHistory_NewestFirst(t *testing.T) {
	svc, _, workouts, owner := newTestWorkoutService(t)
	workouts.entries = sampleEntries(owner.ID)

	entries, err := svc.History(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.SortDescending, workouts.lastDir)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-01-08", entries[0].CalendarDate())
	assert.Equal(t, "2024-01-01", entries[2].CalendarDate())
}

func TestProgress_ReadsAscending(t *testing.T) {
	svc, _, workouts, owner := newTestWorkoutService(t)
	workouts.entries = sampleEntries(owner.ID)

	data, err := svc.Progress(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.SortAscending, workouts.lastDir)
	assert.Equal(t, []string{"2024-01-01", "2024-01-08"}, data["Squat"].Dates)
}

func TestSameDateEntriesKeepInsertionOrder(t *testing.T) {
	svc, _, _, owner := newTestWorkoutService(t)

	for _, weight := range []float64{100, 102.5, 105} {
		_, err := svc.LogWorkout(context.Background(), owner.ID, LogWorkoutInput{Exercise: "Squat", Reps: 5, Weight: weight})
		require.NoError(t, err)
	}

	data, err := svc.Progress(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 102.5, 105}, data["Squat"].Weights)
	assert.Equal(t, []string{"2024-02-01", "2024-02-01", "2024-02-01"}, data["Squat"].Dates)

	history, err := svc.History(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 105.0, history[0].Weight)
	assert.Equal(t, 102.5, history[1].Weight)
	assert.Equal(t, 100.0, history[2].Weight)
}

func TestHistory_TiesReversedWithinDate(t *testing.T) {
	svc, _, workouts, owner := newTestWorkoutService(t)
	workouts.entries = []domain.WorkoutEntry{
		{OwnerID: owner.ID, Exercise: "Squat", Reps: 5, Weight: 100, Date: day("2024-01-01")},
		{OwnerID: owner.ID, Exercise: "Bench Press", Reps: 8, Weight: 60, Date: day("2024-01-05")},
		{OwnerID: owner.ID, Exercise: "Deadlift", Reps: 3, Weight: 140, Date: day("2024-01-01")},
	}

	history, err := svc.History(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "Bench Press", history[0].Exercise)
	assert.Equal(t, "Deadlift", history[1].Exercise)
	assert.Equal(t, "Squat", history[2].Exercise)
}

func TestProgress_StoreFailurePropagates(t *testing.T) {
	svc, _, workouts, owner := newTestWorkoutService(t)
	workouts.getErr = errors.New("timeout")

	_, err := svc.Progress(context.Background(), owner.ID)
	require.ErrorIs(t, err, workouts.getErr)
}

func TestExercises(t *testing.T) {
	svc, _, _, _ := newTestWorkoutService(t)
	catalog := svc.Exercises()
	assert.Len(t, catalog, 8)
	assert.Equal(t, "Squat", catalog[0])
	assert.Equal(t, "Other", catalog[len(catalog)-1])
}
