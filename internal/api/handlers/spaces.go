package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ezzcrafts/testimania/internal/api/dto"
	"github.com/ezzcrafts/testimania/internal/api/middleware"
	"github.com/ezzcrafts/testimania/internal/database/models"
	"github.com/ezzcrafts/testimania/internal/spaces"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpaceHandler struct {
	db *gorm.DB
}

func NewSpaceHandler(db *gorm.DB) *SpaceHandler {
	return &SpaceHandler{db: db}
}

// List handles GET /space
func (h *SpaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var owned []models.Space
	if err := h.db.WithContext(r.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&owned).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to list spaces"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK(owned))
}

// CreateOrUpdate handles POST /space. Without a spaceId query parameter it
// creates a blank space (the two-step create-then-edit workflow); with one it
// does a full replace scoped to the caller's ownership.
func (h *SpaceHandler) CreateOrUpdate(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("spaceId") == "" {
		h.create(w, r)
		return
	}
	h.update(w, r)
}

func (h *SpaceHandler) create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	space := models.Space{
		UserID:      userID,
		Header:      "",
		Description: "",
	}
	if err := h.db.WithContext(r.Context()).Create(&space).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to create space"))
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateSpaceResponse{
		Response: dto.OK("Space created successfully. Fill in the details"),
		SpaceID:  space.ID.String(),
	})
}

func (h *SpaceHandler) update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(r.URL.Query().Get("spaceId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid space ID"))
		return
	}

	var req dto.SpaceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.FailValidation(errs))
		return
	}

	// Scoped by (id, user_id) so a guessed id belonging to someone else is
	// indistinguishable from a missing one.
	result := h.db.WithContext(r.Context()).
		Model(&models.Space{}).
		Where("id = ? AND user_id = ?", spaceID, userID).
		Updates(map[string]interface{}{
			"name":            spaces.NormalizeName(req.Name),
			"header":          req.Header,
			"description":     req.Description,
			"collect_name":    req.UserName,
			"collect_email":   req.UserEmail,
			"collect_address": req.UserAddress,
			"collect_socials": req.UserSocials,
		})
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to update space"))
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.Fail("No space exists"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK("Your space details has been added successfully 🎉"))
}

// Delete handles DELETE /space?spaceId=
func (h *SpaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(r.URL.Query().Get("spaceId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid space ID"))
		return
	}

	result := h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", spaceID, userID).
		Delete(&models.Space{})
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to delete space"))
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.Fail("No space exists"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK("Space deleted successfully"))
}

// Get handles GET /space/{spaceId}
func (h *SpaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(chi.URLParam(r, "spaceId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid space ID"))
		return
	}

	var space models.Space
	if err := h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", spaceID, userID).
		First(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.Fail("No space exists"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to get space"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK(space))
}

// GetByName handles GET /get-space-data?spaceName=, the public slug lookup
// backing the submission page. No session required: respondents are
// anonymous.
func (h *SpaceHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := spaces.NameFromSlug(r.URL.Query().Get("spaceName"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Space name is required"))
		return
	}

	var space models.Space
	if err := h.db.WithContext(r.Context()).
		Where("name = ?", name).
		First(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.Fail("Space not found with this name"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to get space"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK(space))
}
