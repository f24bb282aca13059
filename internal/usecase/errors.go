package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError はusecaseの失敗をHTTPステータス付きで表す。
// gorm等の生のエラーはここで必ず変換し、外に漏らさない。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// よく使う失敗
func errUnauthorized() error {
	return NewHTTPError(http.StatusUnauthorized, "unauthorized")
}

func errNotFound() error {
	return NewHTTPError(http.StatusNotFound, "not found")
}

func errDB() error {
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

// 在庫不足はどの商品かを必ず伝える
func errInsufficientStock(productName string) error {
	return NewHTTPError(http.StatusConflict, fmt.Sprintf("insufficient stock for %s", productName))
}
