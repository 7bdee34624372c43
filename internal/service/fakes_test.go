package service

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User

	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = primitive.NewObjectID()
	cp := *user
	f.users[user.ID] = &cp
	return user.ID, nil
}

func (f *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.ID == id })
}

type fakeWorkoutRepo struct {
	mu      sync.Mutex
	entries []domain.WorkoutEntry

	createErr error
	getErr    error
	lastDir   repository.SortDirection
}

func (f *fakeWorkoutRepo) Create(_ context.Context, entry *domain.WorkoutEntry) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	f.entries = append(f.entries, *entry)
	return entry.ID, nil
}

// GetByOwner orders by date, then by insertion order, like the Mongo repository.
func (f *fakeWorkoutRepo) GetByOwner(_ context.Context, ownerID primitive.ObjectID, dir repository.SortDirection) ([]domain.WorkoutEntry, error) {
	f.lastDir = dir
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.WorkoutEntry{}
	for _, e := range f.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == repository.SortDescending {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	if dir == repository.SortDescending {
		// stable sort kept insertion order for ties; descending wants it reversed
		for i := 0; i < len(out); {
			j := i
			for j < len(out) && out[j].Date.Equal(out[i].Date) {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				out[a], out[b] = out[b], out[a]
			}
			i = j
		}
	}
	return out, nil
}

type fakeExportRepo struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]*domain.ExportRecord

	upsertErr error
	upserts   int
}

func newFakeExportRepo() *fakeExportRepo {
	return &fakeExportRepo{records: map[primitive.ObjectID]*domain.ExportRecord{}}
}

func (f *fakeExportRepo) Upsert(_ context.Context, record *domain.ExportRecord) error {
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.records {
		if r.OwnerID == record.OwnerID && r.FileName == record.FileName {
			record.ID = id
			cp := *record
			f.records[id] = &cp
			return nil
		}
	}
	record.ID = primitive.NewObjectID()
	cp := *record
	f.records[record.ID] = &cp
	return nil
}

func (f *fakeExportRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ExportRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeExportRepo) GetByOwner(_ context.Context, ownerID primitive.ObjectID) ([]domain.ExportRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.ExportRecord{}
	for _, r := range f.records {
		if r.OwnerID == ownerID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExportedAt.After(out[j].ExportedAt) })
	return out, nil
}

type fakeStorage struct {
	objects map[string][]byte
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) PutObject(_ context.Context, objectKey, _ string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[objectKey] = append([]byte(nil), body...)
	return nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectKey + "?sig=x", nil
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }
