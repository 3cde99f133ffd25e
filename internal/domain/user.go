package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User and profile validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmailFormat  = errors.New("invalid email format")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrProfileUserIDEmpty  = errors.New("profile user ID cannot be empty")
)

// Password length bounds. The upper bound is bcrypt's practical limit.
const (
	MinPasswordLength = 12
	MaxPasswordLength = 72
)

// User represents a registered user. It holds authentication identity only;
// all business state hangs off tasks owned by the user.
type User struct {
	ID             uuid.UUID `json:"id"`
	DisplayName    string    `json:"display_name,omitempty"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only populated during registration
	HashedPassword string    `json:"-"` // Never exposed in JSON
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new active User with the given email and plaintext
// password. The caller is responsible for hashing the password before the
// user is stored. Returns an error if validation fails.
func NewUser(email, password, displayName string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:          uuid.New(),
		DisplayName: displayName,
		Email:       email,
		Password:    password,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmailFormat
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs a structural sanity check: a single '@' with a
// dotted domain after it. Full RFC 5322 validation is left to the request
// layer's validator.
func validEmailFormat(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// Profile extends a user with optional contact details. It is created lazily:
// a user has no profile row until the first profile write.
type Profile struct {
	UserID      uuid.UUID `json:"user_id"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProfile creates a Profile for the given user.
// Returns an error if validation fails.
func NewProfile(userID uuid.UUID, phoneNumber, address string) (*Profile, error) {
	now := time.Now().UTC()
	profile := &Profile{
		UserID:      userID,
		PhoneNumber: phoneNumber,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrProfileUserIDEmpty
	}
	return nil
}
