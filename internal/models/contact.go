package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactType categorizes a contact record.
type ContactType string

const (
	ContactTypePersonal  ContactType = "personal"
	ContactTypeFamily    ContactType = "family"
	ContactTypeFriend    ContactType = "friend"
	ContactTypeWork      ContactType = "work"
	ContactTypeClient    ContactType = "client"
	ContactTypeVendor    ContactType = "vendor"
	ContactTypeEmergency ContactType = "emergency"
	ContactTypeOther     ContactType = "other"
)

// ContactTypes lists every accepted contact type value.
var ContactTypes = []ContactType{
	ContactTypePersonal,
	ContactTypeFamily,
	ContactTypeFriend,
	ContactTypeWork,
	ContactTypeClient,
	ContactTypeVendor,
	ContactTypeEmergency,
	ContactTypeOther,
}

// CommunicationMethod is the preferred way to reach a contact.
type CommunicationMethod string

const (
	CommunicationPhone    CommunicationMethod = "phone"
	CommunicationEmail    CommunicationMethod = "email"
	CommunicationSMS      CommunicationMethod = "sms"
	CommunicationWhatsApp CommunicationMethod = "whatsapp"
	CommunicationTelegram CommunicationMethod = "telegram"
	CommunicationZoom     CommunicationMethod = "zoom"
	CommunicationOther    CommunicationMethod = "other"
)

// CommunicationMethods lists every accepted communication method value.
var CommunicationMethods = []CommunicationMethod{
	CommunicationPhone,
	CommunicationEmail,
	CommunicationSMS,
	CommunicationWhatsApp,
	CommunicationTelegram,
	CommunicationZoom,
	CommunicationOther,
}

// Genders lists the accepted gender values.
var Genders = []string{"Male", "Female", "Other"}

// Contact is an address-book entry owned by exactly one user. CreatedBy and
// UpdatedBy are audit references to the acting account, not ownership.
type Contact struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	FirstName      string `gorm:"size:30;not null" json:"first_name"`
	LastName       string `gorm:"size:30;not null" json:"last_name"`
	Phone          string `gorm:"column:contact;size:13;not null" json:"contact"`
	AlternatePhone string `gorm:"size:13" json:"alternate_contact"`
	Email          string `json:"email"`
	AlternateEmail string `json:"alternate_email"`

	ContactType            ContactType         `gorm:"type:varchar(20);not null;default:'personal'" json:"contact_type"`
	PreferredCommunication CommunicationMethod `gorm:"type:varchar(20)" json:"preferred_communication"`

	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender      string     `gorm:"size:20;not null" json:"gender"`
	Nickname    string     `gorm:"size:30" json:"nickname"`
	JobTitle    string     `gorm:"size:100" json:"job_title"`
	Company     string     `gorm:"size:100" json:"company"`
	Website     string     `json:"website"`

	Address    string `gorm:"size:200;not null" json:"address"`
	City       string `gorm:"size:75;not null" json:"city"`
	State      string `gorm:"size:75;not null" json:"state"`
	Country    string `gorm:"size:75;not null" json:"country"`
	PostalCode string `gorm:"size:20;not null" json:"postal_code"`

	LinkedInUsername  string `gorm:"size:50" json:"linkedin_username"`
	TwitterUsername   string `gorm:"size:50" json:"twitter_username"`
	FacebookUsername  string `gorm:"size:50" json:"facebook_username"`
	InstagramUsername string `gorm:"size:50" json:"instagram_username"`

	Notes      string `gorm:"type:text" json:"notes"`
	PhotoPath  string `json:"photo_path"`
	IsFavorite bool   `gorm:"default:false" json:"is_favorite"`

	CreatedByID *uint `json:"created_by_id,omitempty"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	UpdatedByID *uint `json:"updated_by_id,omitempty"`
	UpdatedBy   *User `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Contact) TableName() string {
	return "contacts"
}

// ValidContactType reports whether v is one of the accepted contact types.
func ValidContactType(v ContactType) bool {
	for _, t := range ContactTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ValidCommunicationMethod reports whether v is one of the accepted methods.
func ValidCommunicationMethod(v CommunicationMethod) bool {
	for _, m := range CommunicationMethods {
		if m == v {
			return true
		}
	}
	return false
}

// ValidGender reports whether v is one of the accepted gender values.
func ValidGender(v string) bool {
	for _, g := range Genders {
		if g == v {
			return true
		}
	}
	return false
}
