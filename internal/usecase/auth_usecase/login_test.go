package auth_test

import (
	"context"
	"testing"
	"time"

	"webshop/internal/domain/model"
	"webshop/internal/repository"
	auth "webshop/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 照合結果を固定で返す
type stubVerifier struct{ ok bool }

func (v stubVerifier) Verify(plain string, hashed string) bool { return v.ok }

type stubIssuer struct {
	token     string
	expiresAt time.Time
}

func (i stubIssuer) Issue(customerID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return i.token, i.expiresAt, nil
}

func TestLoginUsecase_Execute_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(CustomerRepoMock)
	uc := auth.NewLoginUsecase(repo, stubVerifier{ok: true}, stubIssuer{}, fixedClock{time.Now()})

	repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.Customer{}, repository.ErrNotFound)

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "nobody@example.com", Password: "password123"})
	// 存在しないユーザでもメッセージは同じ
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUsecase_Execute_WrongPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(CustomerRepoMock)
	uc := auth.NewLoginUsecase(repo, stubVerifier{ok: false}, stubIssuer{}, fixedClock{time.Now()})

	repo.On("FindByEmail", mock.Anything, "taro@example.com").Return(model.Customer{
		ID: 1, Email: "taro@example.com", PasswordHash: "hashed", Role: model.RoleCustomer,
	}, nil)

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "taro@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUsecase_Execute_Success(t *testing.T) {
	ctx := context.Background()
	expires := time.Date(2025, 6, 1, 12, 15, 0, 0, time.UTC)
	repo := new(CustomerRepoMock)
	uc := auth.NewLoginUsecase(
		repo,
		stubVerifier{ok: true},
		stubIssuer{token: "token-abc", expiresAt: expires},
		fixedClock{time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	)

	repo.On("FindByEmail", mock.Anything, "taro@example.com").Return(model.Customer{
		ID: 1, Email: "taro@example.com", PasswordHash: "hashed", Role: model.RoleCustomer,
	}, nil)

	out, err := uc.Execute(ctx, auth.LoginInput{Email: "taro@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, "token-abc", out.AccessToken)
	assert.Equal(t, expires, out.ExpiresAt)
	assert.Equal(t, int64(1), out.Customer.ID)
	assert.Empty(t, out.Customer.PasswordHash)

	repo.AssertExpectations(t)
}

func TestBcryptPasswordHasherAndVerifier(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4)
	verifier := auth.NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hashed)

	assert.True(t, verifier.Verify("password123", hashed))
	assert.False(t, verifier.Verify("wrongpass", hashed))
}
