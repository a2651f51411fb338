package models

import "gorm.io/gorm"

// User owns sequences and holds the Smartlead account connection
type User struct {
	gorm.Model
	Email string `gorm:"not null;uniqueIndex" json:"email"`
	Name  string `json:"name"`

	// Smartlead credentials. The API key is stored encrypted and
	// decrypted by the store on read.
	SmartleadAPIKey         string `json:"-"`
	SmartleadEmailAccountID string `json:"smartlead_email_account_id"`

	// Relations
	Sequences []Sequence `gorm:"foreignKey:UserID" json:"sequences,omitempty"`
}

// SmartleadCredentials is the resolved, decrypted credential pair the
// engine hands to the provider client factory.
type SmartleadCredentials struct {
	APIKey         string
	EmailAccountID string
}
