package service

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUnknownExercise = errors.New("exercise is not in the catalog")
	ErrInvalidReps     = errors.New("reps must be a positive number")
	ErrInvalidWeight   = errors.New("weight must not be negative")
)

// LogWorkoutInput carries one submitted set.
type LogWorkoutInput struct {
	Exercise string
	Reps     int
	Weight   float64
	Notes    string
}

type WorkoutService interface {
	LogWorkout(ctx context.Context, ownerID primitive.ObjectID, input LogWorkoutInput) (*domain.WorkoutEntry, error)
	// History returns the owner's entries, newest first.
	History(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutEntry, error)
	// Progress groups the owner's entries by exercise in date-ascending order.
	Progress(ctx context.Context, ownerID primitive.ObjectID) (ProgressData, error)
	Exercises() []string
}

type workoutService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	now         func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

// LogWorkout stores one entry for ownerID, dated now.
func (s *workoutService) LogWorkout(ctx context.Context, ownerID primitive.ObjectID, input LogWorkoutInput) (*domain.WorkoutEntry, error) {
	if !domain.IsKnownExercise(input.Exercise) {
		return nil, ErrUnknownExercise
	}
	if input.Reps <= 0 {
		return nil, ErrInvalidReps
	}
	if input.Weight < 0 {
		return nil, ErrInvalidWeight
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup owner: %w", err)
	}

	entry := &domain.WorkoutEntry{
		OwnerID:  ownerID,
		Exercise: input.Exercise,
		Reps:     input.Reps,
		Weight:   input.Weight,
		Date:     s.now().UTC(),
	}
	if input.Notes != "" {
		notes := input.Notes
		entry.Notes = &notes
	}

	id, err := s.workoutRepo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("create workout entry: %w", err)
	}
	entry.ID = id
	return entry, nil
}

func (s *workoutService) History(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutEntry, error) {
	entries, err := s.workoutRepo.GetByOwner(ctx, ownerID, repository.SortDescending)
	if err != nil {
		return nil, fmt.Errorf("read workout history: %w", err)
	}
	return entries, nil
}

func (s *workoutService) Progress(ctx context.Context, ownerID primitive.ObjectID) (ProgressData, error) {
	entries, err := s.workoutRepo.GetByOwner(ctx, ownerID, repository.SortAscending)
	if err != nil {
		return nil, fmt.Errorf("read workout entries: %w", err)
	}
	return AggregateProgress(entries), nil
}

func (s *workoutService) Exercises() []string {
	return domain.ExerciseCatalog()
}
