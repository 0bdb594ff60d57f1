package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ezzcrafts/testimania/internal/api/dto"
	"github.com/ezzcrafts/testimania/internal/api/handlers"
	"github.com/ezzcrafts/testimania/internal/api/middleware"
	"github.com/ezzcrafts/testimania/internal/database/models"
	"github.com/ezzcrafts/testimania/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSpaceTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	handler := handlers.NewSpaceHandler(tc.DB)

	r := chi.NewRouter()
	r.Get("/get-space-data", handler.GetByName)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.JWTService))
		r.Get("/space", handler.List)
		r.Post("/space", handler.CreateOrUpdate)
		r.Delete("/space", handler.Delete)
		r.Get("/space/{spaceId}", handler.Get)
	})

	return r, tc
}

func TestSpaceHandler_CreateAndUpdate(t *testing.T) {
	router, tc := setupSpaceTestRouter(t)
	defer tc.Cleanup()

	t.Run("create returns a blank space id", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/space", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp dto.CreateSpaceResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.SpaceID)
	})

	t.Run("update stores the name lowercased", func(t *testing.T) {
		space := testutil.CreateTestSpace(t, tc.DB, tc.User.ID, "placeholder")

		body := dto.SpaceUpdateRequest{
			Name:        "Launch Day",
			Header:      "Tell us about launch day",
			Description: "What did you think?",
			UserName:    true,
			UserEmail:   true,
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/space?spaceId="+space.ID.String(), body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var updated models.Space
		require.NoError(t, tc.DB.First(&updated, "id = ?", space.ID).Error)
		assert.Equal(t, "launch day", updated.Name)
		assert.True(t, updated.CollectName)
		assert.False(t, updated.CollectAddress)
	})

	t.Run("short name rejected", func(t *testing.T) {
		space := testutil.CreateTestSpace(t, tc.DB, tc.User.ID, "another")

		body := dto.SpaceUpdateRequest{Name: "ab", Header: "A valid header"}
		req := testutil.AuthenticatedRequest(t, "POST", "/space?spaceId="+space.ID.String(), body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("updating another user's space looks like 404", func(t *testing.T) {
		other := testutil.CreateTestUser(t, tc.DB)
		theirSpace := testutil.CreateTestSpace(t, tc.DB, other.ID, "their space")

		body := dto.SpaceUpdateRequest{
			Name:   "hijacked",
			Header: "Should never land",
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/space?spaceId="+theirSpace.ID.String(), body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var untouched models.Space
		require.NoError(t, tc.DB.First(&untouched, "id = ?", theirSpace.ID).Error)
		assert.Equal(t, "their space", untouched.Name)
	})
}

func TestSpaceHandler_List(t *testing.T) {
	router, tc := setupSpaceTestRouter(t)
	defer tc.Cleanup()

	testutil.CreateTestSpace(t, tc.DB, tc.User.ID, "space one")
	testutil.CreateTestSpace(t, tc.DB, tc.User.ID, "space two")

	other := testutil.CreateTestUser(t, tc.DB)
	testutil.CreateTestSpace(t, tc.DB, other.ID, "not yours")

	req := testutil.AuthenticatedRequest(t, "GET", "/space", nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool           `json:"success"`
		Message []models.Space `json:"message"`
	}
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Len(t, resp.Message, 2)
	for _, s := range resp.Message {
		assert.Equal(t, tc.User.ID, s.UserID)
	}
}

func TestSpaceHandler_Get(t *testing.T) {
	router, tc := setupSpaceTestRouter(t)
	defer tc.Cleanup()

	space := testutil.CreateTestSpace(t, tc.DB, tc.User.ID, "my space")

	t.Run("own space", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/space/"+space.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("someone else's space", func(t *testing.T) {
		other := testutil.CreateTestUser(t, tc.DB)
		theirSpace := testutil.CreateTestSpace(t, tc.DB, other.ID, "hidden")

		req := testutil.AuthenticatedRequest(t, "GET", "/space/"+theirSpace.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/space/not-a-uuid", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSpaceHandler_Delete(t *testing.T) {
	router, tc := setupSpaceTestRouter(t)
	defer tc.Cleanup()

	t.Run("deletes own space", func(t *testing.T) {
		space := testutil.CreateTestSpace(t, tc.DB, tc.User.ID, "short lived")

		req := testutil.AuthenticatedRequest(t, "DELETE", "/space?spaceId="+space.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var count int64
		tc.DB.Model(&models.Space{}).Where("id = ?", space.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("someone else's space survives", func(t *testing.T) {
		other := testutil.CreateTestUser(t, tc.DB)
		theirSpace := testutil.CreateTestSpace(t, tc.DB, other.ID, "protected")

		req := testutil.AuthenticatedRequest(t, "DELETE", "/space?spaceId="+theirSpace.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var count int64
		tc.DB.Model(&models.Space{}).Where("id = ?", theirSpace.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestSpaceHandler_GetByName(t *testing.T) {
	router, tc := setupSpaceTestRouter(t)
	defer tc.Cleanup()

	testutil.CreateTestSpace(t, tc.DB, tc.User.ID, "launch day")

	t.Run("slug resolves without a session", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/get-space-data?spaceName=Launch-Day", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Success bool         `json:"success"`
			Message models.Space `json:"message"`
		}
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "launch day", resp.Message.Name)
	})

	t.Run("unknown slug", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/get-space-data?spaceName=no-such-space", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/get-space-data", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
