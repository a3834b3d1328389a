package entity

import "time"

// Category groups catalog activities
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Activities []Activity `gorm:"foreignKey:CategoryID" json:"activities,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
