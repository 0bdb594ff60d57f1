package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ezzcrafts/testimania/internal/auth"
	"github.com/ezzcrafts/testimania/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Space{},
		&models.Question{},
		&models.Testimonial{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestDB closes the test database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("warning: failed to get sql.DB: %v", err)
		return
	}
	sqlDB.Close()
}

// CreateTestUser creates a verified test user
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("testpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	suffix := uuid.New().String()[:8]
	user := &models.User{
		Base: models.Base{
			ID: uuid.New(),
		},
		Username:         "user-" + suffix,
		Email:            "test-" + suffix + "@example.com",
		PasswordHash:     hash,
		IsVerified:       true,
		VerifyCode:       "123456",
		VerifyCodeExpiry: time.Now().Add(time.Hour),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestSpace creates a test space owned by the given user
func CreateTestSpace(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *models.Space {
	t.Helper()

	space := &models.Space{
		Base: models.Base{
			ID: uuid.New(),
		},
		UserID:         userID,
		Name:           name,
		Header:         "Share your story",
		Description:    "Tell us what you think",
		CollectName:    true,
		CollectEmail:   true,
		CollectAddress: false,
		CollectSocials: false,
	}

	if err := db.Create(space).Error; err != nil {
		t.Fatalf("failed to create test space: %v", err)
	}

	return space
}

// CreateTestQuestion creates a test question under the given space
func CreateTestQuestion(t *testing.T, db *gorm.DB, userID, spaceID uuid.UUID, message string) *models.Question {
	t.Helper()

	question := &models.Question{
		Base: models.Base{
			ID: uuid.New(),
		},
		UserID:  userID,
		SpaceID: spaceID,
		Message: message,
	}

	if err := db.Create(question).Error; err != nil {
		t.Fatalf("failed to create test question: %v", err)
	}

	return question
}

// CreateTestTestimonial creates a test testimonial under the given space
func CreateTestTestimonial(t *testing.T, db *gorm.DB, userID, spaceID uuid.UUID, rating int) *models.Testimonial {
	t.Helper()

	testimonial := &models.Testimonial{
		Base: models.Base{
			ID: uuid.New(),
		},
		UserID:   userID,
		SpaceID:  spaceID,
		Review:   "This product changed how our team works",
		Rating:   rating,
		UserName: "Happy Customer",
	}

	if err := db.Create(testimonial).Error; err != nil {
		t.Fatalf("failed to create test testimonial: %v", err)
	}

	return testimonial
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// RecordingMailer captures sent verification codes instead of dispatching them
type RecordingMailer struct {
	mu    sync.Mutex
	Sent  []SentMail
	Fail  bool
	Error error
}

type SentMail struct {
	Email    string
	Username string
	Code     string
}

func (m *RecordingMailer) SendVerificationCode(_ context.Context, email, username, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail {
		if m.Error != nil {
			return m.Error
		}
		return errMailFailed
	}

	m.Sent = append(m.Sent, SentMail{Email: email, Username: username, Code: code})
	return nil
}

// LastSent returns the most recently captured mail, failing the test when none exists
func (m *RecordingMailer) LastSent(t *testing.T) SentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Sent) == 0 {
		t.Fatal("no mail was sent")
	}
	return m.Sent[len(m.Sent)-1]
}

var errMailFailed = &mailError{}

type mailError struct{}

func (*mailError) Error() string { return "smtp connection refused" }

// TestSetup holds all the common test dependencies
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	Mailer     *RecordingMailer
	User       *models.User
	Token      string
}

// NewTestContext creates a complete test setup with DB, verified user, and token
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	user := CreateTestUser(t, db)
	token := GenerateTestToken(t, jwtService, user)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		Mailer:     &RecordingMailer{},
		User:       user,
		Token:      token,
	}
}

// AuthService builds an auth service backed by this setup's dependencies
func (ts *TestSetup) AuthService() *auth.Service {
	return auth.NewService(ts.DB, ts.JWTService, ts.Mailer, auth.NewMemorySigninTokens())
}

// Cleanup closes the test database
func (ts *TestSetup) Cleanup() {
	if ts.DB != nil {
		sqlDB, err := ts.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
