package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/ezzcrafts/testimania/internal/api/dto"
	"github.com/ezzcrafts/testimania/internal/api/middleware"
	"github.com/ezzcrafts/testimania/internal/database/models"
	"github.com/ezzcrafts/testimania/pkg/crypto"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestimonialHandler struct {
	db        *gorm.DB
	encryptor *crypto.Encryptor
	logger    *slog.Logger
}

func NewTestimonialHandler(db *gorm.DB, encryptor *crypto.Encryptor, logger *slog.Logger) *TestimonialHandler {
	return &TestimonialHandler{db: db, encryptor: encryptor, logger: logger}
}

// Submit handles POST /testimonial/{spaceId}, the anonymous public
// submission path. The owner is derived from the space, never the caller.
func (h *TestimonialHandler) Submit(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(chi.URLParam(r, "spaceId"))
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

	var req dto.TestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.FailValidation(errs))
		return
	}

	// Respondent fields are only collected when the space asks for them.
	if !space.CollectName {
		req.UserName = ""
	}
	if !space.CollectEmail {
		req.UserEmail = ""
	}
	if !space.CollectAddress {
		req.UserAddress = ""
	}
	if !space.CollectSocials {
		req.UserSocials = ""
	}

	testimonial := models.Testimonial{
		UserID:   space.UserID,
		SpaceID:  spaceID,
		Review:   req.Review,
		Rating:   req.Rating,
		UserName: req.UserName,
		IsLiked:  false,
	}

	// Contact details are encrypted at rest; the display name is not, since
	// it is shown on the public wall.
	if err := h.encryptContacts(&testimonial, req); err != nil {
		h.logger.Error("encrypting respondent details failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to save testimonial"))
		return
	}

	if err := h.db.WithContext(r.Context()).Create(&testimonial).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to save testimonial"))
		return
	}

	writeJSON(w, http.StatusCreated, dto.OK("Testimonial sent successfully 🎉"))
}

// ListForSpace handles GET /testimonial/{spaceId} for the space's owner.
func (h *TestimonialHandler) ListForSpace(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(chi.URLParam(r, "spaceId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid space ID"))
		return
	}

	var testimonials []models.Testimonial
	if err := h.db.WithContext(r.Context()).
		Where("user_id = ? AND space_id = ?", userID, spaceID).
		Order("created_at DESC").
		Find(&testimonials).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to list testimonials"))
		return
	}

	if err := h.decryptAll(testimonials); err != nil {
		h.logger.Error("decrypting respondent details failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to list testimonials"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK(testimonials))
}

// Stats handles GET /testimonial: aggregate count and average rating over
// all of the caller's testimonials, computed per request.
func (h *TestimonialHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var testimonials []models.Testimonial
	if err := h.db.WithContext(r.Context()).
		Where("user_id = ?", userID).
		Find(&testimonials).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to compute stats"))
		return
	}

	total := len(testimonials)
	average := 0.0
	if total > 0 {
		sum := 0
		for _, t := range testimonials {
			sum += t.Rating
		}
		average = math.Round(float64(sum)/float64(total)*100) / 100
	}

	writeJSON(w, http.StatusOK, dto.StatsResponse{
		Response:          dto.OK("User found"),
		TotalTestimonials: total,
		AverageRating:     average,
	})
}

// ToggleLike handles POST /like/{testimonialId}: a boolean overwrite of the
// curation flag, scoped to the owner.
func (h *TestimonialHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	testimonialID, err := uuid.Parse(chi.URLParam(r, "testimonialId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid testimonial ID"))
		return
	}

	var req dto.LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	result := h.db.WithContext(r.Context()).
		Model(&models.Testimonial{}).
		Where("id = ? AND user_id = ?", testimonialID, userID).
		Update("is_liked", req.IsLiked)
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to update testimonial"))
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.Fail("No such testimonial exists"))
		return
	}

	message := "Testimonial removed from your wall of love 💔"
	if req.IsLiked {
		message = "Testimonial added to your wall of love ❤️"
	}

	writeJSON(w, http.StatusOK, dto.LikeResponse{
		Response: dto.OK(message),
		State:    req.IsLiked,
	})
}

// ListLiked handles GET /like: all of the caller's curated testimonials.
func (h *TestimonialHandler) ListLiked(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var testimonials []models.Testimonial
	if err := h.db.WithContext(r.Context()).
		Where("user_id = ? AND is_liked = ?", userID, true).
		Order("created_at DESC").
		Find(&testimonials).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to list testimonials"))
		return
	}

	if err := h.decryptAll(testimonials); err != nil {
		h.logger.Error("decrypting respondent details failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to list testimonials"))
		return
	}

	writeJSON(w, http.StatusOK, dto.OK(testimonials))
}

// WallOfLove handles GET /wall-of-love?spaceId=, the public embed feed:
// curated testimonials only.
func (h *TestimonialHandler) WallOfLove(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(r.URL.Query().Get("spaceId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("No such space exists"))
		return
	}

	var testimonials []models.Testimonial
	if err := h.db.WithContext(r.Context()).
		Where("space_id = ? AND is_liked = ?", spaceID, true).
		Order("created_at DESC").
		Find(&testimonials).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.Fail("Failed to list testimonials"))
		return
	}

	// The embed shows review, rating and name; contact details stay out of
	// the public payload.
	for i := range testimonials {
		testimonials[i].UserEmail = ""
		testimonials[i].UserAddress = ""
		testimonials[i].UserSocials = ""
	}

	writeJSON(w, http.StatusOK, dto.OK(testimonials))
}

func (h *TestimonialHandler) encryptContacts(t *models.Testimonial, req dto.TestimonialRequest) error {
	var err error
	if t.UserEmail, err = h.encryptor.EncryptString(req.UserEmail); err != nil {
		return err
	}
	if t.UserAddress, err = h.encryptor.EncryptString(req.UserAddress); err != nil {
		return err
	}
	if t.UserSocials, err = h.encryptor.EncryptString(req.UserSocials); err != nil {
		return err
	}
	return nil
}

func (h *TestimonialHandler) decryptAll(testimonials []models.Testimonial) error {
	for i := range testimonials {
		var err error
		if testimonials[i].UserEmail, err = h.encryptor.DecryptString(testimonials[i].UserEmail); err != nil {
			return err
		}
		if testimonials[i].UserAddress, err = h.encryptor.DecryptString(testimonials[i].UserAddress); err != nil {
			return err
		}
		if testimonials[i].UserSocials, err = h.encryptor.DecryptString(testimonials[i].UserSocials); err != nil {
			return err
		}
	}
	return nil
}
