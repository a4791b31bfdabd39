package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
	"github.com/terraincognita07/cycleinsights/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrOwnerAlreadyExists   = errors.New("owner already exists")
	ErrOwnerNotFound        = errors.New("owner not found")
	ErrSessionUserMismatch  = errors.New("session does not match user")
	ErrPasswordResetFailed  = errors.New("password reset failed")
	ErrOwnerCreateFailed    = errors.New("owner create failed")
	ErrAuthUserLookupFailed = errors.New("auth user lookup failed")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// Authenticate returns ErrInvalidCredentials for both unknown emails and wrong
// passwords.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrAuthUserLookupFailed
	}
	if !found {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// ResolveSession loads the token's user and rejects tokens issued before the
// last password change.
func (service *AuthService) ResolveSession(claims *SessionClaims) (models.User, error) {
	user, err := service.users.FindByID(claims.UserID)
	if err != nil {
		return models.User{}, err
	}
	if !IsPasswordStateFingerprintMatch(claims.PasswordState, user.PasswordHash) {
		return models.User{}, ErrSessionUserMismatch
	}
	return user, nil
}

// CreateOwner registers a profile with the default cycle model anchored at today.
func (service *AuthService) CreateOwner(emailRaw string, password string, now time.Time) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrAuthUserLookupFailed
	}
	if exists {
		return models.User{}, ErrOwnerAlreadyExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, ErrOwnerCreateFailed
	}

	lastPeriodStart := DateOnly(now)
	user := models.User{
		Email:           email,
		PasswordHash:    hash,
		CycleLength:     models.DefaultCycleLength,
		PeriodLength:    models.DefaultPeriodLength,
		LastPeriodStart: &lastPeriodStart,
		CreatedAt:       now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrOwnerCreateFailed
	}
	return user, nil
}

// ResetPassword replaces the owner's password with a generated one and returns it.
func (service *AuthService) ResetPassword(emailRaw string) (string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", ErrAuthCredentialsInvalid
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return "", ErrAuthUserLookupFailed
	}
	if !found {
		return "", ErrOwnerNotFound
	}

	password, err := GeneratePassword()
	if err != nil {
		return "", ErrPasswordResetFailed
	}
	hash, err := HashPassword(password)
	if err != nil {
		return "", ErrPasswordResetFailed
	}
	if err := service.users.UpdatePassword(user.ID, hash); err != nil {
		return "", ErrPasswordResetFailed
	}
	return password, nil
}

// GeneratePassword builds a 16 character password that passes
// ValidatePasswordStrength.
func GeneratePassword() (string, error) {
	for {
		value, err := security.RandomPassword(16)
		if err != nil {
			return "", err
		}
		if ValidatePasswordStrength(value) == nil {
			return value, nil
		}
	}
}
