package models

import (
	"strings"

	"gorm.io/gorm"
)

// Contact represents a single outreach contact
type Contact struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Email     string `gorm:"not null;index" json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`

	// Running score accumulated from engagement events
	EngagementScore int `gorm:"default:0" json:"engagement_score"`

	// Relations
	Enrollments []Enrollment `gorm:"foreignKey:ContactID" json:"enrollments,omitempty"`
	Engagements []Engagement `gorm:"foreignKey:ContactID" json:"engagements,omitempty"`
}

// FullName joins first and last name, dropping the space when either is empty
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
