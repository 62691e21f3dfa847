package identity

import (
	"regexp"
	"strings"

	"github.com/jeenmata/impex/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Table names in the remote store
const (
	TableUsers        = "users"
	TableApplications = "dealer_applications"
)

// Role is a user's access level
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// DealerStatus is the standing of a dealer account
type DealerStatus string

const (
	DealerPending   DealerStatus = "Pending"
	DealerApproved  DealerStatus = "Approved"
	DealerRejected  DealerStatus = "Rejected"
	DealerSuspended DealerStatus = "Suspended"
)

// IsValid reports whether s is a known dealer status
func (s DealerStatus) IsValid() bool {
	switch s {
	case DealerPending, DealerApproved, DealerRejected, DealerSuspended:
		return true
	}
	return false
}

const bcryptCost = bcrypt.DefaultCost

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an account that can sign in: an admin or a dealer
type User struct {
	shared.BaseEntity
	Email              string       `json:"email"`
	FullName           string       `json:"full_name"`
	Role               Role         `json:"role"`
	BusinessName       string       `json:"business_name"`
	VatPan             string       `json:"vat_pan"`
	Address            string       `json:"address"`
	Phone              string       `json:"phone"`
	WhatsApp           string       `json:"whatsapp"`
	BusinessType       string       `json:"business_type"`
	ApplicationMessage string       `json:"application_message,omitempty"`
	DealerStatus       DealerStatus `json:"dealer_status,omitempty"`
	PasswordHash       string       `json:"-"`
}

// NewUser creates a user with the given role
func NewUser(email, fullName string, role Role) (*User, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("Unknown role: " + string(role))
	}
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		FullName:   strings.TrimSpace(fullName),
		Role:       role,
	}, nil
}

// IsAdmin reports whether the user administers the store
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsApprovedDealer reports whether the user may use the dealer portal
func (u *User) IsApprovedDealer() bool {
	return u.DealerStatus == DealerApproved
}

// ProfileUpdate carries the fields a dealer can edit on their own profile
type ProfileUpdate struct {
	FullName     string
	BusinessName string
	VatPan       string
	Address      string
	Phone        string
	WhatsApp     string
	BusinessType string
}

// UpdateProfile applies a profile update
func (u *User) UpdateProfile(p ProfileUpdate) {
	u.FullName = strings.TrimSpace(p.FullName)
	u.BusinessName = strings.TrimSpace(p.BusinessName)
	u.VatPan = strings.TrimSpace(p.VatPan)
	u.Address = strings.TrimSpace(p.Address)
	u.Phone = strings.TrimSpace(p.Phone)
	u.WhatsApp = strings.TrimSpace(p.WhatsApp)
	u.BusinessType = strings.TrimSpace(p.BusinessType)
	u.Touch()
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewValidationError("Unknown role: " + string(role))
	}
	u.Role = role
	u.Touch()
	return nil
}

// SetDealerStatus changes the dealer standing
func (u *User) SetDealerStatus(status DealerStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Unknown dealer status: " + string(status))
	}
	u.DealerStatus = status
	u.Touch()
	return nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// VerifyPassword checks a password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HashPassword validates and hashes a password
func HashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return string(hash), nil
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the basic shape of an email address
func ValidateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

// UserRepository persists users
type UserRepository = shared.Repository[User]
