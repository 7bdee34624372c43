package service

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/logging"
	"alcyxob/liftlog/internal/repository"
	"alcyxob/liftlog/internal/storage"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CSVContentType is the media type of rendered exports.
const CSVContentType = "text/csv"

// --- Error Definitions ---
var (
	ErrExportNotFound    = errors.New("export not found")
	ErrExportNotArchived = errors.New("export was not archived to object storage")
	ErrArchiveDisabled   = errors.New("export archive is not configured")
)

var csvHeader = []string{"Date", "Exercise", "Reps", "Weight", "Notes"}

// ExportResult is a rendered export, as written to disk.
type ExportResult struct {
	FileName string
	Content  []byte
	Record   *domain.ExportRecord
}

type ExportService interface {
	// Export renders all of owner's entries (date ascending) as CSV, writes the file
	// to the export directory and returns the same bytes.
	Export(ctx context.Context, owner *domain.User) (*ExportResult, error)
	ListExports(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ExportRecord, error)
	ExportDownloadURL(ctx context.Context, ownerID, exportID primitive.ObjectID) (string, error)
}

type exportService struct {
	workoutRepo repository.WorkoutRepository
	exportRepo  repository.ExportRepository
	fileStorage storage.FileStorage // nil when archiving is disabled
	exportDir   string
	now         func() time.Time
}

// NewExportService creates a new instance of exportService. fileStorage may be nil.
func NewExportService(
	workoutRepo repository.WorkoutRepository,
	exportRepo repository.ExportRepository,
	fileStorage storage.FileStorage,
	exportDir string,
) ExportService {
	return &exportService{
		workoutRepo: workoutRepo,
		exportRepo:  exportRepo,
		fileStorage: fileStorage,
		exportDir:   exportDir,
		now:         time.Now,
	}
}

func (s *exportService) Export(ctx context.Context, owner *domain.User) (*ExportResult, error) {
	if !usernamePattern.MatchString(owner.Username) {
		return nil, ErrInvalidUsername
	}

	entries, err := s.workoutRepo.GetByOwner(ctx, owner.ID, repository.SortAscending)
	if err != nil {
		return nil, fmt.Errorf("read workout entries: %w", err)
	}

	var buf bytes.Buffer
	if err := RenderCSV(&buf, entries); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	content := buf.Bytes()

	exportedAt := s.now()
	fileName := ExportFileName(owner.Username, exportedAt)

	if err := os.MkdirAll(s.exportDir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", s.exportDir, err)
	}
	filePath := filepath.Join(s.exportDir, fileName)
	if err := writeFileAtomic(s.exportDir, fileName, content); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx).WithFields(log.Fields{"owner": owner.ID.Hex(), "file": fileName})

	record := &domain.ExportRecord{
		OwnerID:    owner.ID,
		FileName:   fileName,
		Path:       filePath,
		Rows:       len(entries),
		Size:       int64(len(content)),
		ExportedAt: exportedAt.UTC(),
	}

	if s.fileStorage != nil {
		key := ExportObjectKey(owner.ID, fileName)
		if err := s.fileStorage.PutObject(ctx, key, CSVContentType, content); err != nil {
			logger.Warnf("archive export: %s", err)
		} else {
			record.ObjectKey = key
			record.Archived = true
		}
	}

	// the file is on disk at this point; metadata is best effort
	if err := s.exportRepo.Upsert(ctx, record); err != nil {
		logger.Warnf("store export record: %s", err)
	}

	logger.Debugf("exported %d workout entries", len(entries))
	return &ExportResult{FileName: fileName, Content: content, Record: record}, nil
}

func (s *exportService) ListExports(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ExportRecord, error) {
	records, err := s.exportRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return records, nil
}

func (s *exportService) ExportDownloadURL(ctx context.Context, ownerID, exportID primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrArchiveDisabled
	}

	record, err := s.exportRepo.GetByID(ctx, exportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExportNotFound
		}
		return "", fmt.Errorf("get export: %w", err)
	}
	// other users' exports are reported as missing
	if record.OwnerID != ownerID {
		return "", ErrExportNotFound
	}
	if !record.Archived || record.ObjectKey == "" {
		return "", ErrExportNotArchived
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, record.ObjectKey, storage.DefaultPresignedURLExpiry)
}

// RenderCSV writes the header row and one row per entry, in input order.
func RenderCSV(w io.Writer, entries []domain.WorkoutEntry) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range entries {
		e := &entries[i]
		row := []string{
			e.CalendarDate(),
			e.Exercise,
			strconv.Itoa(e.Reps),
			strconv.FormatFloat(e.Weight, 'f', -1, 64),
			e.NotesOrEmpty(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFileName is workouts_<username>_<YYYYMMDD>.csv, dated in at's location.
func ExportFileName(username string, at time.Time) string {
	return fmt.Sprintf("workouts_%s_%s.csv", username, at.Format("20060102"))
}

// ExportObjectKey is the object storage key of an archived export.
func ExportObjectKey(ownerID primitive.ObjectID, fileName string) string {
	return path.Join("exports", ownerID.Hex(), fileName)
}

// writeFileAtomic writes data to dir/name through a temp file in the same
// directory, so dir/name is either the complete new content or left untouched.
func writeFileAtomic(dir, name string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o640); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}
