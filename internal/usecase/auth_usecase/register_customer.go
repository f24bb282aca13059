package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"webshop/internal/domain/model"
	"webshop/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordMismatch   = errors.New("password mismatch")
	ErrNameRequired       = errors.New("name required")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ログイン失敗（存在しない/パスワード違いは区別しない）
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// 会員登録の入力。パスワードは確認用と2回受け取る。
type RegisterCustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Password2 string
}

type RegisterCustomerOutput struct {
	Customer model.Customer
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterCustomerUsecaseは会員登録の処理。
type RegisterCustomerUsecase struct {
	customerRepo repository.CustomerRepository
	hasher       PasswordHasher
	clock        Clock
}

// DI
func NewRegisterCustomerUsecase(
	customerRepo repository.CustomerRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterCustomerUsecase {
	return &RegisterCustomerUsecase{
		customerRepo: customerRepo,
		hasher:       hasher,
		clock:        clock,
	}
}

// 会員登録実行
func (u *RegisterCustomerUsecase) Execute(ctx context.Context, in RegisterCustomerInput) (RegisterCustomerOutput, error) {
	var out RegisterCustomerOutput

	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return out, ErrNameRequired
	}

	// emailの形式チェック
	if !isValidEmailFormat(in.Email) {
		return out, ErrInvalidEmailFormat
	}

	// 2回入力の一致チェック
	if in.Password != in.Password2 {
		return out, ErrPasswordMismatch
	}

	// password の長さチェック（最小8文字）
	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	// email重複チェック
	exists, err := u.customerRepo.ExistsByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return out, err
	}
	if exists {
		return out, ErrEmailAlreadyExists
	}

	// パスワードをハッシュ化（平文は保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()

	customer, err := u.customerRepo.Create(ctx, model.Customer{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashed,
		Role:         model.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// 存在チェックとINSERTの間に他リクエストが割り込んだ場合
		if errors.Is(err, repository.ErrDuplicate) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	// 返すときはハッシュを空にして漏洩防止
	customer.PasswordHash = ""
	out.Customer = customer
	return out, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
