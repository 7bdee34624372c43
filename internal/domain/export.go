package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportRecord stores metadata about a rendered CSV export.
// The file itself lives in the export directory and, optionally, in object storage.
type ExportRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	FileName   string             `bson:"fileName" json:"fileName"` // workouts_<username>_<YYYYMMDD>.csv
	Path       string             `bson:"path" json:"-"`            // Local path, internal use
	ObjectKey  string             `bson:"objectKey,omitempty" json:"-"`
	Archived   bool               `bson:"archived" json:"archived"`
	Rows       int                `bson:"rows" json:"rows"` // Data rows, header excluded
	Size       int64              `bson:"size" json:"size"` // Bytes
	ExportedAt time.Time          `bson:"exportedAt" json:"exportedAt"`
}
