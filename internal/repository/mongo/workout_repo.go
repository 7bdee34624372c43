package mongo

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new workout entry repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout entry. A zero Date defaults to now.
func (r *mongoWorkoutRepository) Create(ctx context.Context, entry *domain.WorkoutEntry) (primitive.ObjectID, error) {
	if entry.OwnerID == primitive.NilObjectID || entry.Exercise == "" {
		return primitive.NilObjectID, errors.New("workout entry requires ownerId and exercise")
	}
	if entry.Reps <= 0 || entry.Weight < 0 {
		return primitive.NilObjectID, errors.New("workout entry requires positive reps and non-negative weight")
	}

	entry.ID = primitive.NewObjectID()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByOwner retrieves all entries of one owner sorted by date, then by _id.
func (r *mongoWorkoutRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID, dir repository.SortDirection) ([]domain.WorkoutEntry, error) {
	if dir != repository.SortDescending {
		dir = repository.SortAscending
	}
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: int(dir)}, {Key: "_id", Value: int(dir)}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.WorkoutEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// history, progress and export all read one owner's entries by date
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index(),
		},
	})
}
