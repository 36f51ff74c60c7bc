package domain

import "errors"

var (
	// ErrLoginIDRequired — пустой логин при регистрации.
	ErrLoginIDRequired = errors.New("login_id is required")
	// ErrUsernameRequired — пустое имя покупателя.
	ErrUsernameRequired = errors.New("username is required")
	// ErrPasswordTooShort — пароль короче минимально допустимой длины.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

const minPasswordLength = 8

// Customer — учётная запись покупателя. PasswordHash хранит только bcrypt-хэш.
type Customer struct {
	ID           int64
	LoginID      string
	Username     string
	PasswordHash string
}

// Principal — аутентифицированная личность, которой ядро доверяет полностью.
// Разрешается внешним коллаборатором (auth-сервисом) из входящего токена.
type Principal struct {
	CustomerID int64
	Username   string
}

// ValidatePassword проверяет минимальную длину пароля.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateRegistration проверяет поля регистрации до хэширования пароля.
func ValidateRegistration(loginID, username, password string) []error {
	var errs []error
	if loginID == "" {
		errs = append(errs, ErrLoginIDRequired)
	}
	if username == "" {
		errs = append(errs, ErrUsernameRequired)
	}
	if len(password) < minPasswordLength {
		errs = append(errs, ErrPasswordTooShort)
	}
	return errs
}
