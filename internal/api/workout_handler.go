package api

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/metrics"
	"alcyxob/liftlog/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkoutHandler struct {
	authService    service.AuthService
	workoutService service.WorkoutService
	exportService  service.ExportService
	metrics        *metrics.Manager
}

func NewWorkoutHandler(
	authService service.AuthService,
	workoutService service.WorkoutService,
	exportService service.ExportService,
	m *metrics.Manager,
) *WorkoutHandler {
	return &WorkoutHandler{
		authService:    authService,
		workoutService: workoutService,
		exportService:  exportService,
		metrics:        m,
	}
}

// --- DTOs ---

// LogWorkoutRequest uses pointers so that a zero weight is accepted while a missing one is not.
type LogWorkoutRequest struct {
	Exercise string   `json:"exercise" binding:"required"`
	Reps     *int     `json:"reps" binding:"required,min=1"`
	Weight   *float64 `json:"weight" binding:"required,min=0"`
	Notes    string   `json:"notes" binding:"max=1000"`
}

type WorkoutResponse struct {
	ID       string    `json:"id"`
	Exercise string    `json:"exercise"`
	Reps     int       `json:"reps"`
	Weight   float64   `json:"weight"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
}

type ExportResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	Rows       int       `json:"rows"`
	Size       int64     `json:"size"`
	Archived   bool      `json:"archived"`
	ExportedAt time.Time `json:"exportedAt"`
}

type ExportURLResponse struct {
	URL string `json:"url"`
}

// --- Handler Methods ---

// LogWorkout godoc
// @Summary Log one workout entry
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body LogWorkoutRequest true "Workout entry"
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /workouts [post]
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.workoutService.LogWorkout(c.Request.Context(), userID, service.LogWorkoutInput{
		Exercise: req.Exercise,
		Reps:     *req.Reps,
		Weight:   *req.Weight,
		Notes:    req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownExercise),
			errors.Is(err, service.ErrInvalidReps),
			errors.Is(err, service.ErrInvalidWeight):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		default:
			abortWithInternalError(c, "Failed to log workout.", err)
		}
		return
	}

	h.metrics.CounterWorkoutsLogged.Inc()
	c.JSON(http.StatusCreated, MapWorkoutToResponse(entry))
}

// History godoc
// @Summary Get my workout history, newest first
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutResponse
// @Router /workouts [get]
func (h *WorkoutHandler) History(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	entries, err := h.workoutService.History(c.Request.Context(), userID)
	if err != nil {
		abortWithInternalError(c, "Failed to retrieve workout history.", err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(entries))
}

// Progress godoc
// @Summary Get per-exercise progress series for charts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProgressData
// @Router /workouts/progress [get]
func (h *WorkoutHandler) Progress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	data, err := h.workoutService.Progress(c.Request.Context(), userID)
	if err != nil {
		abortWithInternalError(c, "Failed to retrieve workout data.", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Exercises returns the exercise catalog.
func (h *WorkoutHandler) Exercises(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exercises": h.workoutService.Exercises()})
}

// Export godoc
// @Summary Export my workouts as CSV
// @Description Writes workouts_<username>_<YYYYMMDD>.csv to the export directory and returns it as an attachment.
// @Tags Exports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 500 {object} gin.H "Export failed"
// @Router /workouts/export [get]
func (h *WorkoutHandler) Export(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	owner, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.metrics.CounterExportFailures.Inc()
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithInternalError(c, "Failed to export workouts.", err)
		}
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), owner)
	if err != nil {
		h.metrics.CounterExportFailures.Inc()
		abortWithInternalError(c, "Failed to export workouts.", err)
		return
	}

	h.metrics.CounterExports.Inc()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	c.Data(http.StatusOK, service.CSVContentType, result.Content)
}

// ListExports returns metadata of my previous exports, newest first.
func (h *WorkoutHandler) ListExports(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	records, err := h.exportService.ListExports(c.Request.Context(), userID)
	if err != nil {
		abortWithInternalError(c, "Failed to list exports.", err)
		return
	}

	resp := make([]ExportResponse, len(records))
	for i := range records {
		resp[i] = MapExportToResponse(&records[i])
	}
	c.JSON(http.StatusOK, resp)
}

// ExportURL godoc
// @Summary Get a temporary download URL for an archived export
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Param exportId path string true "Export's ObjectID Hex"
// @Success 200 {object} ExportURLResponse
// @Failure 400 {object} gin.H "Invalid export ID"
// @Failure 404 {object} gin.H "Export not found or not archived"
// @Failure 501 {object} gin.H "Archive not configured"
// @Router /workouts/exports/{exportId}/url [get]
func (h *WorkoutHandler) ExportURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	exportID, err := primitive.ObjectIDFromHex(c.Param("exportId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid export ID format.")
		return
	}

	url, err := h.exportService.ExportDownloadURL(c.Request.Context(), userID, exportID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNotFound), errors.Is(err, service.ErrExportNotArchived):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrArchiveDisabled):
			abortWithError(c, http.StatusNotImplemented, err.Error())
		default:
			abortWithInternalError(c, "Failed to generate download URL.", err)
		}
		return
	}
	c.JSON(http.StatusOK, ExportURLResponse{URL: url})
}

// --- Mappers ---

func MapWorkoutToResponse(entry *domain.WorkoutEntry) WorkoutResponse {
	if entry == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{
		ID:       entry.ID.Hex(),
		Exercise: entry.Exercise,
		Reps:     entry.Reps,
		Weight:   entry.Weight,
		Date:     entry.Date,
		Notes:    entry.NotesOrEmpty(),
	}
}

func MapWorkoutsToResponse(entries []domain.WorkoutEntry) []WorkoutResponse {
	resp := make([]WorkoutResponse, len(entries))
	for i := range entries {
		resp[i] = MapWorkoutToResponse(&entries[i])
	}
	return resp
}

func MapExportToResponse(record *domain.ExportRecord) ExportResponse {
	return ExportResponse{
		ID:         record.ID.Hex(),
		FileName:   record.FileName,
		Rows:       record.Rows,
		Size:       record.Size,
		Archived:   record.Archived,
		ExportedAt: record.ExportedAt,
	}
}
