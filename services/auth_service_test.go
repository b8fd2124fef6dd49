package services

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrj111/foodgram-backend/models"
	"github.com/nrj111/foodgram-backend/storage"
	"github.com/nrj111/foodgram-backend/utils"
)

const testSecret = "test-secret"

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAuthService_RegisterAndLoginUser(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAuthService(store, testSecret, testLogger())
	ctx := context.Background()

	user, token, err := svc.RegisterUser(ctx, RegisterUserInput{
		FullName: "Alice", Email: "Alice@Example.com", Password: "pw123456",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "pw123456", user.Password)

	claims, err := utils.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
	assert.Equal(t, models.ActorKindUser, claims.Kind)

	// login accepts any casing of the address
	logged, token2, err := svc.LoginUser(ctx, "  ALICE@example.com ", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token2)
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAuthService(store, testSecret, testLogger())
	ctx := context.Background()

	_, _, err := svc.RegisterUser(ctx, RegisterUserInput{FullName: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	_, _, err = svc.RegisterUser(ctx, RegisterUserInput{FullName: "B", Email: "A@B.com", Password: "y"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_LoginFailuresLookAlike(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAuthService(store, testSecret, testLogger())
	ctx := context.Background()

	_, _, err := svc.RegisterUser(ctx, RegisterUserInput{FullName: "A", Email: "a@b.com", Password: "correct"})
	require.NoError(t, err)

	_, _, unknownErr := svc.LoginUser(ctx, "nobody@b.com", "correct")
	_, _, wrongErr := svc.LoginUser(ctx, "a@b.com", "wrong")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestAuthService_ValidationErrors(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAuthService(store, testSecret, testLogger())
	ctx := context.Background()

	_, _, err := svc.RegisterUser(ctx, RegisterUserInput{FullName: "A", Email: "", Password: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.RegisterFoodPartner(ctx, RegisterPartnerInput{Name: "P", Email: "p@b.com"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_PartnerRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAuthService(store, testSecret, testLogger())
	ctx := context.Background()

	partner, token, err := svc.RegisterFoodPartner(ctx, RegisterPartnerInput{
		Name: "Tasty", ContactName: "Bob", Phone: "555", Address: "Main St",
		Email: "tasty@b.com", Password: "secret1",
	})
	require.NoError(t, err)

	claims, err := utils.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, partner.ID, claims.ID)
	assert.Equal(t, models.ActorKindPartner, claims.Kind)

	_, _, err = svc.LoginFoodPartner(ctx, "tasty@b.com", "secret1")
	assert.NoError(t, err)
}

func TestAuthService_MissingSecret(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAuthService(store, "", testLogger())

	_, _, err := svc.RegisterUser(context.Background(), RegisterUserInput{
		FullName: "A", Email: "a@b.com", Password: "x",
	})
	assert.ErrorIs(t, err, utils.ErrMissingSecret)
}
