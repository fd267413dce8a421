package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"index" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Building struct {
	BaseModel
	Organization string  `gorm:"size:255;not null;index" json:"organization"`
	Name         string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Address      *string `gorm:"type:text" json:"address"`
}

func (Building) TableName() string {
	return "buildings"
}

// Visitor is a single check-in at a building.
type Visitor struct {
	BaseModel
	BuildingID   uint       `gorm:"not null;index" json:"buildingID"`
	BadgeID      uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex" json:"badgeID"`
	BadgeCode    string     `gorm:"size:50;not null;uniqueIndex" json:"badgeCode"`
	FirstName    string     `gorm:"size:100;not null" json:"firstName"`
	LastName     string     `gorm:"size:100;not null" json:"lastName"`
	Email        *string    `gorm:"size:255" json:"email"`
	Company      *string    `gorm:"size:255" json:"company"`
	HostName     string     `gorm:"size:255;not null" json:"hostName"`
	Status       string     `gorm:"size:50;default:'checked_in';index" json:"status"`
	CheckedInAt  time.Time  `gorm:"not null;index" json:"checkedInAt"`
	CheckedOutAt *time.Time `gorm:"index" json:"checkedOutAt"`

	Building *Building `gorm:"foreignKey:BuildingID;references:ID" json:"building,omitempty"`
}

func (Visitor) TableName() string {
	return "visitors"
}

const (
	VisitorStatusCheckedIn  = "checked_in"
	VisitorStatusCheckedOut = "checked_out"
)
