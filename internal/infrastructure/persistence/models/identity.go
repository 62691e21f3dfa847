package models

import (
	"github.com/jeenmata/impex/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email              string                `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName           string                `gorm:"type:varchar(200)"`
	Role               identity.Role         `gorm:"type:varchar(20);not null"`
	BusinessName       string                `gorm:"type:varchar(200)"`
	VatPan             string                `gorm:"type:varchar(50)"`
	Address            string                `gorm:"type:text"`
	Phone              string                `gorm:"type:varchar(50)"`
	WhatsApp           string                `gorm:"column:whatsapp;type:varchar(50)"`
	BusinessType       string                `gorm:"type:varchar(100)"`
	ApplicationMessage string                `gorm:"type:text"`
	DealerStatus       identity.DealerStatus `gorm:"type:varchar(20);index"`
	PasswordHash       string                `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return identity.TableUsers
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:         m.BaseModel.ToDomain(),
		Email:              m.Email,
		FullName:           m.FullName,
		Role:               m.Role,
		BusinessName:       m.BusinessName,
		VatPan:             m.VatPan,
		Address:            m.Address,
		Phone:              m.Phone,
		WhatsApp:           m.WhatsApp,
		BusinessType:       m.BusinessType,
		ApplicationMessage: m.ApplicationMessage,
		DealerStatus:       m.DealerStatus,
		PasswordHash:       m.PasswordHash,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.FullName = u.FullName
	m.Role = u.Role
	m.BusinessName = u.BusinessName
	m.VatPan = u.VatPan
	m.Address = u.Address
	m.Phone = u.Phone
	m.WhatsApp = u.WhatsApp
	m.BusinessType = u.BusinessType
	m.ApplicationMessage = u.ApplicationMessage
	m.DealerStatus = u.DealerStatus
	m.PasswordHash = u.PasswordHash
}

// DealerApplicationModel is the persistence model for the DealerApplication
// domain entity.
type DealerApplicationModel struct {
	BaseModel
	BusinessName       string                     `gorm:"type:varchar(200);not null"`
	ContactPerson      string                     `gorm:"type:varchar(200);not null"`
	Email              string                     `gorm:"type:varchar(255);not null;index"`
	Phone              string                     `gorm:"type:varchar(50)"`
	Address            string                     `gorm:"type:text"`
	BusinessType       string                     `gorm:"type:varchar(100)"`
	VatPan             string                     `gorm:"type:varchar(50)"`
	WhatsApp           string                     `gorm:"column:whatsapp;type:varchar(50)"`
	ApplicationMessage string                     `gorm:"type:text"`
	Status             identity.ApplicationStatus `gorm:"type:varchar(20);not null;index"`
	PasswordHash       string                     `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (DealerApplicationModel) TableName() string {
	return identity.TableApplications
}

// ToDomain converts the persistence model to a domain DealerApplication entity.
func (m *DealerApplicationModel) ToDomain() *identity.DealerApplication {
	return &identity.DealerApplication{
		BaseAggregateRoot:  m.toAggregate(),
		BusinessName:       m.BusinessName,
		ContactPerson:      m.ContactPerson,
		Email:              m.Email,
		Phone:              m.Phone,
		Address:            m.Address,
		BusinessType:       m.BusinessType,
		VatPan:             m.VatPan,
		WhatsApp:           m.WhatsApp,
		ApplicationMessage: m.ApplicationMessage,
		Status:             m.Status,
		PasswordHash:       m.PasswordHash,
	}
}

// FromDomain populates the persistence model from a domain DealerApplication entity.
func (m *DealerApplicationModel) FromDomain(a *identity.DealerApplication) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.BusinessName = a.BusinessName
	m.ContactPerson = a.ContactPerson
	m.Email = a.Email
	m.Phone = a.Phone
	m.Address = a.Address
	m.BusinessType = a.BusinessType
	m.VatPan = a.VatPan
	m.WhatsApp = a.WhatsApp
	m.ApplicationMessage = a.ApplicationMessage
	m.Status = a.Status
	m.PasswordHash = a.PasswordHash
}
