package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table.
// ApprovalStatus mirrors the professional profile's approval state and is
// null for patients and admins; the approval workflow keeps both in sync
// inside a single transaction.
type User struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID         int             `gorm:"not null;index" json:"role_id"`
	Email          string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string          `gorm:"type:text;not null" json:"-"`
	FullName       string          `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone          string          `gorm:"type:varchar(20)" json:"phone,omitempty"`
	ApprovalStatus *ApprovalStatus `gorm:"type:varchar(20)" json:"approval_status,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role                Role                 `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	ProfessionalProfile *ProfessionalProfile `gorm:"foreignKey:UserID" json:"professional_profile,omitempty"`
	PatientProfile      *PatientProfile      `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}
