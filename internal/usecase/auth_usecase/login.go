package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"webshop/internal/domain/model"
	"webshop/internal/repository"
)

// ログインの入力
type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Customer    model.Customer
}

// 平文とハッシュの照合
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// アクセストークン発行
type TokenIssuer interface {
	Issue(customerID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// LoginUsecaseはログイン処理。
type LoginUsecase struct {
	customerRepo repository.CustomerRepository
	verifier     PasswordVerifier
	issuer       TokenIssuer
	clock        Clock
}

// DI
func NewLoginUsecase(
	customerRepo repository.CustomerRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		customerRepo: customerRepo,
		verifier:     verifier,
		issuer:       issuer,
		clock:        clock,
	}
}

// ログイン実行
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	customer, err := u.customerRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// 存在有無を外から判別させない
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	if !u.verifier.Verify(in.Password, customer.PasswordHash) {
		return out, ErrInvalidCredentials
	}

	token, expiresAt, err := u.issuer.Issue(customer.ID, customer.Role, u.clock.Now())
	if err != nil {
		return out, err
	}

	customer.PasswordHash = ""
	out.AccessToken = token
	out.ExpiresAt = expiresAt
	out.Customer = customer
	return out, nil
}
