package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the calendar-date rendering used by progress series and CSV exports.
const DateLayout = "2006-01-02"

// WorkoutEntry is one logged exercise performance. Entries are immutable once stored.
type WorkoutEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID  primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Exercise string             `bson:"exercise" json:"exercise"`
	Reps     int                `bson:"reps" json:"reps"`
	Weight   float64            `bson:"weight" json:"weight"` // kg or lbs, unit is up to the user
	Date     time.Time          `bson:"date" json:"date"`
	Notes    *string            `bson:"notes,omitempty" json:"notes,omitempty"`
}

// CalendarDate returns the entry date as YYYY-MM-DD in UTC.
func (w *WorkoutEntry) CalendarDate() string {
	return w.Date.UTC().Format(DateLayout)
}

// NotesOrEmpty returns the notes text, or "" when none were given.
func (w *WorkoutEntry) NotesOrEmpty() string {
	if w.Notes == nil {
		return ""
	}
	return *w.Notes
}
