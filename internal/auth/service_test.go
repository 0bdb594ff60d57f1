package auth_test

import (
	"testing"
	"time"

	"github.com/ezzcrafts/testimania/internal/auth"
	"github.com/ezzcrafts/testimania/internal/database/models"
	"github.com/ezzcrafts/testimania/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db     *gorm.DB
	mailer *testutil.RecordingMailer
	tokens *auth.MemorySigninTokens
	svc    *auth.Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	mailer := &testutil.RecordingMailer{}
	tokens := auth.NewMemorySigninTokens()
	jwtService := testutil.CreateTestJWTService()

	return &serviceFixture{
		db:     db,
		mailer: mailer,
		tokens: tokens,
		svc:    auth.NewService(db, jwtService, mailer, tokens),
	}
}

func (f *serviceFixture) signup(t *testing.T, username, email string) {
	t.Helper()
	err := f.svc.Signup(testutil.TestContext(t), auth.SignupInput{
		Username: username,
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
}

func TestService_Signup(t *testing.T) {
	t.Run("creates pending user and mails code", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")

		var user models.User
		require.NoError(t, f.db.Where("email = ?", "alice@example.com").First(&user).Error)
		assert.False(t, user.IsVerified)
		assert.Len(t, user.VerifyCode, 6)
		assert.True(t, user.VerifyCodeExpiry.After(time.Now()))

		sent := f.mailer.LastSent(t)
		assert.Equal(t, "alice@example.com", sent.Email)
		assert.Equal(t, user.VerifyCode, sent.Code)
	})

	t.Run("verified username conflicts", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")
		_, err := f.svc.Verify(testutil.TestContext(t), "alice", f.mailer.LastSent(t).Code)
		require.NoError(t, err)

		err = f.svc.Signup(testutil.TestContext(t), auth.SignupInput{
			Username: "alice",
			Email:    "other@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
	})

	t.Run("verified email conflicts", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")
		_, err := f.svc.Verify(testutil.TestContext(t), "alice", f.mailer.LastSent(t).Code)
		require.NoError(t, err)

		err = f.svc.Signup(testutil.TestContext(t), auth.SignupInput{
			Username: "alice2",
			Email:    "alice@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("unverified email gets overwritten", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")
		firstCode := f.mailer.LastSent(t).Code

		f.signup(t, "alicia", "alice@example.com")

		var user models.User
		require.NoError(t, f.db.Where("email = ?", "alice@example.com").First(&user).Error)
		assert.Equal(t, "alicia", user.Username)
		assert.False(t, user.IsVerified)
		assert.NotEqual(t, "", user.VerifyCode)
		_ = firstCode // codes may collide, the username rewrite is the real signal

		var count int64
		f.db.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("mail failure leaves user unverified and surfaces", func(t *testing.T) {
		f := newServiceFixture(t)
		f.mailer.Fail = true

		err := f.svc.Signup(testutil.TestContext(t), auth.SignupInput{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, auth.ErrMailDispatch)

		var user models.User
		require.NoError(t, f.db.Where("email = ?", "bob@example.com").First(&user).Error)
		assert.False(t, user.IsVerified)
	})
}

func TestService_Verify(t *testing.T) {
	t.Run("correct code verifies and issues signin token", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")

		result, err := f.svc.Verify(testutil.TestContext(t), "alice", f.mailer.LastSent(t).Code)
		require.NoError(t, err)
		assert.True(t, result.User.IsVerified)
		assert.NotEmpty(t, result.SigninToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.svc.Verify(testutil.TestContext(t), "ghost", "123456")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")

		_, err := f.svc.Verify(testutil.TestContext(t), "alice", "000000")
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
	})

	t.Run("wrong code wins over expiry", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")
		require.NoError(t, f.db.Model(&models.User{}).
			Where("username = ?", "alice").
			Update("verify_code_expiry", time.Now().Add(-time.Minute)).Error)

		_, err := f.svc.Verify(testutil.TestContext(t), "alice", "000000")
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
	})

	t.Run("expired code", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")
		require.NoError(t, f.db.Model(&models.User{}).
			Where("username = ?", "alice").
			Update("verify_code_expiry", time.Now().Add(-time.Minute)).Error)

		_, err := f.svc.Verify(testutil.TestContext(t), "alice", f.mailer.LastSent(t).Code)
		assert.ErrorIs(t, err, auth.ErrCodeExpired)
	})

	t.Run("stale re-verify after expiry fails", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")
		code := f.mailer.LastSent(t).Code

		_, err := f.svc.Verify(testutil.TestContext(t), "alice", code)
		require.NoError(t, err)

		require.NoError(t, f.db.Model(&models.User{}).
			Where("username = ?", "alice").
			Update("verify_code_expiry", time.Now().Add(-time.Minute)).Error)

		_, err = f.svc.Verify(testutil.TestContext(t), "alice", code)
		assert.ErrorIs(t, err, auth.ErrCodeExpired)
	})
}

func TestService_ResendVerification(t *testing.T) {
	t.Run("rotates code after successful dispatch", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")

		var before models.User
		require.NoError(t, f.db.Where("email = ?", "alice@example.com").First(&before).Error)

		err := f.svc.ResendVerification(testutil.TestContext(t), "alice@example.com", "alice")
		require.NoError(t, err)

		var after models.User
		require.NoError(t, f.db.Where("email = ?", "alice@example.com").First(&after).Error)
		assert.Equal(t, f.mailer.LastSent(t).Code, after.VerifyCode)
		assert.True(t, after.VerifyCodeExpiry.After(before.VerifyCodeExpiry.Add(-time.Second)))
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newServiceFixture(t)
		err := f.svc.ResendVerification(testutil.TestContext(t), "ghost@example.com", "ghost")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("dispatch failure keeps the old code", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")
		oldCode := f.mailer.LastSent(t).Code

		f.mailer.Fail = true
		err := f.svc.ResendVerification(testutil.TestContext(t), "alice@example.com", "alice")
		assert.ErrorIs(t, err, auth.ErrMailDispatch)

		var user models.User
		require.NoError(t, f.db.Where("email = ?", "alice@example.com").First(&user).Error)
		assert.Equal(t, oldCode, user.VerifyCode)
	})
}

func TestService_CheckUsernameAvailable(t *testing.T) {
	f := newServiceFixture(t)
	f.signup(t, "alice", "alice@example.com")

	// Unverified holders do not block the name.
	available, err := f.svc.CheckUsernameAvailable(testutil.TestContext(t), "alice")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = f.svc.Verify(testutil.TestContext(t), "alice", f.mailer.LastSent(t).Code)
	require.NoError(t, err)

	available, err = f.svc.CheckUsernameAvailable(testutil.TestContext(t), "alice")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = f.svc.CheckUsernameAvailable(testutil.TestContext(t), "nobody")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestService_SignIn(t *testing.T) {
	setup := func(t *testing.T) *serviceFixture {
		f := newServiceFixture(t)
		f.signup(t, "alice", "alice@example.com")
		_, err := f.svc.Verify(testutil.TestContext(t), "alice", f.mailer.LastSent(t).Code)
		require.NoError(t, err)
		return f
	}

	t.Run("valid credentials", func(t *testing.T) {
		f := setup(t)
		resp, err := f.svc.SignIn(testutil.TestContext(t), "alice@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.SignIn(testutil.TestContext(t), "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email collapses to invalid credentials", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.SignIn(testutil.TestContext(t), "ghost@example.com", "secret123")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unverified user", func(t *testing.T) {
		f := newServiceFixture(t)
		f.signup(t, "bob", "bob@example.com")

		_, err := f.svc.SignIn(testutil.TestContext(t), "bob@example.com", "secret123")
		assert.ErrorIs(t, err, auth.ErrNotVerified)
	})
}

func TestService_SignInWithToken(t *testing.T) {
	f := newServiceFixture(t)
	f.signup(t, "alice", "alice@example.com")

	result, err := f.svc.Verify(testutil.TestContext(t), "alice", f.mailer.LastSent(t).Code)
	require.NoError(t, err)
	require.NotEmpty(t, result.SigninToken)

	resp, err := f.svc.SignInWithToken(testutil.TestContext(t), result.SigninToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	// Single use: the second consume fails.
	_, err = f.svc.SignInWithToken(testutil.TestContext(t), result.SigninToken)
	assert.ErrorIs(t, err, auth.ErrTokenConsumed)
}
