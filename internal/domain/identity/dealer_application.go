package identity

import (
	"strings"

	"github.com/jeenmata/impex/internal/domain/shared"
)

// ApplicationStatus is the review state of a dealer application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// DealerApplication is a business's request to become a dealer
type DealerApplication struct {
	shared.BaseAggregateRoot
	BusinessName       string            `json:"business_name"`
	ContactPerson      string            `json:"contact_person"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	Address            string            `json:"address"`
	BusinessType       string            `json:"business_type"`
	VatPan             string            `json:"vat_pan"`
	WhatsApp           string            `json:"whatsapp"`
	ApplicationMessage string            `json:"application_message"`
	Status             ApplicationStatus `json:"status"`
	PasswordHash       string            `json:"-"`
}

// ApplicationInput carries what an applicant submits
type ApplicationInput struct {
	BusinessName       string
	ContactPerson      string
	Email              string
	Phone              string
	Address            string
	BusinessType       string
	VatPan             string
	WhatsApp           string
	ApplicationMessage string
	Password           string
}

// NewDealerApplication creates a pending application. The optional password
// becomes the dealer's login password once approved.
func NewDealerApplication(in ApplicationInput) (*DealerApplication, error) {
	email := NormalizeEmail(in.Email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.BusinessName) == "" {
		return nil, shared.NewValidationError("Business name is required")
	}
	if strings.TrimSpace(in.ContactPerson) == "" {
		return nil, shared.NewValidationError("Contact person is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, shared.NewValidationError("Phone is required")
	}

	app := &DealerApplication{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		BusinessName:       strings.TrimSpace(in.BusinessName),
		ContactPerson:      strings.TrimSpace(in.ContactPerson),
		Email:              email,
		Phone:              strings.TrimSpace(in.Phone),
		Address:            strings.TrimSpace(in.Address),
		BusinessType:       strings.TrimSpace(in.BusinessType),
		VatPan:             strings.TrimSpace(in.VatPan),
		WhatsApp:           strings.TrimSpace(in.WhatsApp),
		ApplicationMessage: strings.TrimSpace(in.ApplicationMessage),
		Status:             ApplicationPending,
	}
	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		app.PasswordHash = hash
	}
	app.AddDomainEvent(NewApplicationEvent(EventTypeApplicationSubmitted, app))
	return app, nil
}

// Approve accepts a pending application
func (a *DealerApplication) Approve() error {
	if a.Status != ApplicationPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending applications can be approved")
	}
	a.Status = ApplicationApproved
	a.Touch()
	a.AddDomainEvent(NewApplicationEvent(EventTypeApplicationApproved, a))
	return nil
}

// Reject declines a pending application
func (a *DealerApplication) Reject() error {
	if a.Status != ApplicationPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending applications can be rejected")
	}
	a.Status = ApplicationRejected
	a.Touch()
	a.AddDomainEvent(NewApplicationEvent(EventTypeApplicationRejected, a))
	return nil
}

// ToUser builds the dealer account for an approved application
func (a *DealerApplication) ToUser() *User {
	u := &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        a.Email,
		Role:         RoleUser,
		PasswordHash: a.PasswordHash,
	}
	a.copyTo(u)
	return u
}

// ApplyTo copies the application's business details onto an existing user
// and marks the user as an approved dealer
func (a *DealerApplication) ApplyTo(u *User) {
	a.copyTo(u)
	if u.PasswordHash == "" {
		u.PasswordHash = a.PasswordHash
	}
	u.Touch()
}

func (a *DealerApplication) copyTo(u *User) {
	u.FullName = a.ContactPerson
	u.BusinessName = a.BusinessName
	u.VatPan = a.VatPan
	u.Address = a.Address
	u.Phone = a.Phone
	u.WhatsApp = a.WhatsApp
	u.BusinessType = a.BusinessType
	u.ApplicationMessage = a.ApplicationMessage
	u.DealerStatus = DealerApproved
}

// PrefillFromApplication fills an incomplete dealer profile from the user's
// approved application. It reports whether the user changed: users that
// already have a business name are left alone.
func PrefillFromApplication(u *User, app *DealerApplication) bool {
	if u.BusinessName != "" || app == nil || app.Status != ApplicationApproved {
		return false
	}
	fullName := app.ContactPerson
	if fullName == "" {
		fullName = u.FullName
	}
	hash := u.PasswordHash
	app.copyTo(u)
	u.FullName = fullName
	u.PasswordHash = hash
	u.Touch()
	return true
}

// DealerApplicationRepository persists dealer applications
type DealerApplicationRepository = shared.Repository[DealerApplication]
