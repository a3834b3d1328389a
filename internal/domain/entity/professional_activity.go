package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfessionalActivity is an offering: a professional providing a catalog
// activity at a price, with free-text availability
type ProfessionalActivity struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfessionalID int64           `gorm:"not null;index" json:"professional_id"`
	ActivityID     int64           `gorm:"not null;index" json:"activity_id"`
	Description    string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Availability   string          `gorm:"type:varchar(255)" json:"availability,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Activity     Activity            `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
}

func (ProfessionalActivity) TableName() string {
	return "professional_activities"
}
