package identity

import (
	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
)

// LoginRequest represents a sign-in attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,max=128"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally names the refresh token to revoke with the access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest sets a new password for the signed-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"max=128"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// LoginResult is returned after a successful sign-in
type LoginResult struct {
	User  *identity.User  `json:"user"`
	Token *auth.TokenPair `json:"token"`
}

// UpdateProfileRequest is what a signed-in user can change about themselves
type UpdateProfileRequest struct {
	FullName     string `json:"full_name" binding:"max=200"`
	BusinessName string `json:"business_name" binding:"max=200"`
	VatPan       string `json:"vat_pan" binding:"max=50"`
	Address      string `json:"address" binding:"max=500"`
	Phone        string `json:"phone" binding:"max=50"`
	WhatsApp     string `json:"whatsapp" binding:"max=50"`
	BusinessType string `json:"business_type" binding:"max=100"`
}

func (r UpdateProfileRequest) toDomain() identity.ProfileUpdate {
	return identity.ProfileUpdate{
		FullName:     r.FullName,
		BusinessName: r.BusinessName,
		VatPan:       r.VatPan,
		Address:      r.Address,
		Phone:        r.Phone,
		WhatsApp:     r.WhatsApp,
		BusinessType: r.BusinessType,
	}
}

// DealerProfileRequest is the dealer profile form. The contact person is
// stored as the user's full name.
type DealerProfileRequest struct {
	ContactPerson string `json:"contact_person" binding:"required,max=200"`
	BusinessName  string `json:"business_name" binding:"required,max=200"`
	VatPan        string `json:"vat_pan" binding:"max=50"`
	Address       string `json:"address" binding:"max=500"`
	Phone         string `json:"phone" binding:"max=50"`
	WhatsApp      string `json:"whatsapp" binding:"max=50"`
	BusinessType  string `json:"business_type" binding:"max=100"`
}

func (r DealerProfileRequest) toDomain() identity.ProfileUpdate {
	return identity.ProfileUpdate{
		FullName:     r.ContactPerson,
		BusinessName: r.BusinessName,
		VatPan:       r.VatPan,
		Address:      r.Address,
		Phone:        r.Phone,
		WhatsApp:     r.WhatsApp,
		BusinessType: r.BusinessType,
	}
}

// UserListFilter narrows the admin user list
type UserListFilter struct {
	Role         string `form:"role" binding:"omitempty,oneof=user admin"`
	DealerStatus string `form:"dealer_status" binding:"omitempty,oneof=Pending Approved Rejected Suspended"`
}

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// UpdateDealerStatusRequest changes a user's dealer standing
type UpdateDealerStatusRequest struct {
	DealerStatus string `json:"dealer_status" binding:"required,oneof=Pending Approved Rejected Suspended"`
}

// DealerApplicationRequest is the public "become a dealer" form
type DealerApplicationRequest struct {
	BusinessName       string `json:"business_name" binding:"required,max=200"`
	ContactPerson      string `json:"contact_person" binding:"required,max=200"`
	Email              string `json:"email" binding:"required,email,max=200"`
	Phone              string `json:"phone" binding:"required,max=50"`
	Address            string `json:"address" binding:"max=500"`
	BusinessType       string `json:"business_type" binding:"max=100"`
	VatPan             string `json:"vat_pan" binding:"max=50"`
	WhatsApp           string `json:"whatsapp" binding:"max=50"`
	ApplicationMessage string `json:"application_message" binding:"max=2000"`
	Password           string `json:"password" binding:"omitempty,min=8,max=128"`
}

func (r DealerApplicationRequest) toInput() identity.ApplicationInput {
	return identity.ApplicationInput{
		BusinessName:       r.BusinessName,
		ContactPerson:      r.ContactPerson,
		Email:              r.Email,
		Phone:              r.Phone,
		Address:            r.Address,
		BusinessType:       r.BusinessType,
		VatPan:             r.VatPan,
		WhatsApp:           r.WhatsApp,
		ApplicationMessage: r.ApplicationMessage,
		Password:           r.Password,
	}
}

// ApplicationListFilter narrows the admin application list
type ApplicationListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=Pending Approved Rejected"`
}

// ApprovalResult is the reviewed application and the dealer account it produced
type ApprovalResult struct {
	Application *identity.DealerApplication `json:"application"`
	User        *identity.User              `json:"user"`
}
