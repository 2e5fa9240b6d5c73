// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Each user owns their own set of
// contact records; deleting a user cascades to everything they own.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `gorm:"size:30;not null" json:"first_name"`
	LastName  string `gorm:"size:30;not null" json:"last_name"`
	// Contact is the user's own phone number. Unique when present; the
	// uniqueness check happens in the validation pipeline with the DB
	// constraint as a last-resort backstop.
	Contact   string         `gorm:"size:15;uniqueIndex:idx_users_contact,where:contact <> '' AND deleted_at IS NULL" json:"contact"`
	Bio       string         `gorm:"type:text" json:"bio"`
	ImagePath string         `json:"image_path"`
	IsStaff   bool           `gorm:"default:false" json:"is_staff"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Contacts  []Contact      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"contacts,omitempty"`
}
