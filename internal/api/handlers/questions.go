package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ezzcrafts/testimania/internal/api/dto"
	"github.com/ezzcrafts/testimania/internal/api/middleware"
	"github.com/ezzcrafts/testimania/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionHandler struct {
	db *gorm.DB
}

func NewQuestionHandler(db *gorm.DB) *QuestionHandler {
	return &QuestionHandler{db: db}
}

// List handles GET /question?spaceId=. Public: respondents need
// the questions to fill in the submission form. The owning user is resolved
// through the space record.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(r.URL.Query().Get("spaceId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid space ID"))
		return
	}

	var space models.Space
	if err := h.db.WithContext(r.Context()).
		Where("id = ?", spaceID).
		First(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.Fail("No such space exists with this id"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to get space"))
		return
	}

	var questions []models.Question
	if err := h.db.WithContext(r.Context()).
		Where("user_id = ? AND space_id = ?", space.UserID, spaceID).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to list questions"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK(questions))
}

// Create handles POST /question?spaceId=
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(r.URL.Query().Get("spaceId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid space ID"))
		return
	}

	var req dto.QuestionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.FailValidation(errs))
		return
	}

	// Only the space's owner may attach questions to it.
	var count int64
	h.db.WithContext(r.Context()).
		Model(&models.Space{}).
		Where("id = ? AND user_id = ?", spaceID, userID).
		Count(&count)
	if count == 0 {
		writeJSON(w, http.StatusNotFound, dto.Fail("No space exists"))
		return
	}

	question := models.Question{
		UserID:  userID,
		SpaceID: spaceID,
		Message: req.Message,
	}
	if err := h.db.WithContext(r.Context()).Create(&question).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Error while adding the question"))
		return
	}

	writeJSON(w, http.StatusCreated, dto.OK("Question added successfully"))
}

// Update handles PUT /question?spaceId=
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(r.URL.Query().Get("spaceId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid space ID"))
		return
	}

	var req dto.QuestionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.FailValidation(errs))
		return
	}

	questionID, err := uuid.Parse(req.ID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid question ID"))
		return
	}

	result := h.db.WithContext(r.Context()).
		Model(&models.Question{}).
		Where("id = ? AND user_id = ? AND space_id = ?", questionID, userID, spaceID).
		Update("message", req.Message)
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Error while updating the question"))
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.Fail("No question exists"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK("Question updated successfully"))
}

// Delete handles DELETE /question?spaceId=
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(r.URL.Query().Get("spaceId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid space ID"))
		return
	}

	var req dto.QuestionDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	questionID, err := uuid.Parse(req.ID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid question ID"))
		return
	}

	result := h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ? AND space_id = ?", questionID, userID, spaceID).
		Delete(&models.Question{})
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Error while deleting the question"))
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.Fail("No question exists"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK("Question deleted successfully"))
}
