package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus represents the review state of a professional profile
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsValid reports whether s is one of the three known approval states
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// ProfessionalProfile represents a service provider awaiting or past admin
// review. DiplomaFile is an opaque reference into the blob store; the backend
// never inspects its contents.
//
// Invariants kept by the approval workflow: ApprovalDate is set iff status is
// approved, RejectionReason is set only when status is rejected.
type ProfessionalProfile struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	DocumentNumber  string         `gorm:"type:varchar(20);not null" json:"document_number"`
	DiplomaFile     string         `gorm:"type:varchar(255);not null" json:"diploma_file"`
	Bio             string         `gorm:"type:text" json:"bio,omitempty"`
	ApprovalStatus  ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"approval_status"`
	ApprovalDate    *time.Time     `json:"approval_date,omitempty"`
	RejectionReason *string        `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User      User                   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Offerings []ProfessionalActivity `gorm:"foreignKey:ProfessionalID" json:"offerings,omitempty"`
}

func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}

// IsPending checks if the profile is still awaiting review
func (p *ProfessionalProfile) IsPending() bool {
	return p.ApprovalStatus == ApprovalStatusPending
}

// IsApproved checks if the profile passed admin review
func (p *ProfessionalProfile) IsApproved() bool {
	return p.ApprovalStatus == ApprovalStatusApproved
}
