package mongo

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exportCollectionName = "exports"

// mongoExportRepository implements repository.ExportRepository
type mongoExportRepository struct {
	collection *mongo.Collection
}

// NewMongoExportRepository creates a new export metadata repository backed by MongoDB.
func NewMongoExportRepository(db *mongo.Database) repository.ExportRepository {
	return &mongoExportRepository{
		collection: db.Collection(exportCollectionName),
	}
}

// Upsert stores the record keyed by (ownerId, fileName). A same-day re-export
// replaces the previous metadata just like it replaces the file. record.ID is
// set to the stored document's ID.
func (r *mongoExportRepository) Upsert(ctx context.Context, record *domain.ExportRecord) error {
	if record.OwnerID == primitive.NilObjectID || record.FileName == "" {
		return errors.New("export record requires ownerId and fileName")
	}

	filter := bson.M{"ownerId": record.OwnerID, "fileName": record.FileName}
	update := bson.M{
		"$set": bson.M{
			"path":       record.Path,
			"objectKey":  record.ObjectKey,
			"archived":   record.Archived,
			"rows":       record.Rows,
			"size":       record.Size,
			"exportedAt": record.ExportedAt,
		},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored domain.ExportRecord
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return err
	}
	record.ID = stored.ID
	return nil
}

// GetByID retrieves export metadata by its ID.
func (r *mongoExportRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExportRecord, error) {
	var record domain.ExportRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByOwner lists the owner's exports, newest first.
func (r *mongoExportRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ExportRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "exportedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.ExportRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureExportIndexes creates necessary indexes for the exports collection.
func EnsureExportIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "fileName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "exportedAt", Value: -1}},
			Options: options.Index(),
		},
	})
}
