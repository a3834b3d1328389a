package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Document  string     `gorm:"type:varchar(50)" json:"document,omitempty"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Address   string     `gorm:"type:varchar(255)" json:"address,omitempty"`
	City      string     `gorm:"type:varchar(100)" json:"city,omitempty"`
	State     string     `gorm:"type:varchar(100)" json:"state,omitempty"`
	Phone     string     `gorm:"type:varchar(20);index" json:"phone,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bookings []Booking `gorm:"foreignKey:PatientID" json:"bookings,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}
