package entity

import "time"

// Activity is a catalog entry professionals can offer services under
type Activity struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CategoryID  *int64    `gorm:"index" json:"category_id,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Category  *Category              `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Offerings []ProfessionalActivity `gorm:"foreignKey:ActivityID" json:"offerings,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}
