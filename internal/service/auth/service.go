package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

const defaultTokenTTL = 1 * time.Hour

// ErrInvalidToken возвращается для просроченного или подделанного токена.
var ErrInvalidToken = errors.New("invalid access token")

type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service отвечает за регистрацию покупателей и bearer-аутентификацию.
type Service struct {
	customers domain.CustomerRepository
	secret    []byte
	tokenTTL  time.Duration
	logger    *log.Entry
	now       func() time.Time
}

// NewService создаёт сервис аутентификации.
func NewService(customers domain.CustomerRepository, secret []byte, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Service{
		customers: customers,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    log.WithField("component", "auth-service"),
		now:       time.Now,
	}
}

// Register создаёт покупателя с bcrypt-хэшем пароля.
func (s *Service) Register(loginID, username, password string) (domain.Customer, error) {
	if errs := domain.ValidateRegistration(loginID, username, password); len(errs) > 0 {
		return domain.Customer{}, errs[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("hash password: %w", err)
	}

	customer, err := s.customers.Create(domain.Customer{
		LoginID:      loginID,
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.Customer{}, err
	}

	s.logger.WithField("customer_id", customer.ID).Info("customer registered")
	return customer, nil
}

// Login проверяет учётные данные и выдаёт подписанный access token.
// Несуществующий логин и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(loginID, password string) (string, error) {
	customer, err := s.customers.GetByLoginID(loginID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("load customer: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	now := s.now()
	claims := accessClaims{
		Username: customer.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "cart-service",
			Subject:   strconv.FormatInt(customer.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return token, nil
}

// Resolve проверяет access token и возвращает принципала запроса.
func (s *Service) Resolve(token string) (domain.Principal, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	customerID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Principal{}, ErrInvalidToken
	}

	return domain.Principal{
		CustomerID: customerID,
		Username:   claims.Username,
	}, nil
}

// Me возвращает профиль текущего покупателя.
func (s *Service) Me(customerID int64) (domain.Customer, error) {
	return s.customers.GetByID(customerID)
}

// UpdateMe обновляет имя и, если передан новый пароль, его хэш.
func (s *Service) UpdateMe(customerID int64, username, password string) error {
	if username == "" {
		return domain.ErrUsernameRequired
	}

	var hash string
	if password != "" {
		if err := domain.ValidatePassword(password); err != nil {
			return err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		hash = string(hashed)
	}

	return s.customers.Update(domain.Customer{
		ID:           customerID,
		Username:     username,
		PasswordHash: hash,
	})
}

// DeleteMe удаляет аккаунт текущего покупателя.
func (s *Service) DeleteMe(customerID int64) error {
	return s.customers.Delete(customerID)
}
