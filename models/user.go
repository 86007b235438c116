package models

import "time"

type UserStatus string

const (
	UserStatusPending UserStatus = "pending" // Signed up, not yet activated
	UserStatusActive  UserStatus = "active"  // Allowed to buy and sell
)

type User struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	Username        string     `gorm:"unique;not null" json:"username"`
	Email           string     `gorm:"unique;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Phone           string     `json:"phone"`
	Status          UserStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	ActivationToken string     `gorm:"index" json:"-"`
	Address         Address    `gorm:"embedded" json:"address"`
	Cart            []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Address is embedded in User and copied by value into Order as the
// delivery address snapshot.
type Address struct {
	Street  string `json:"street"`
	ZipCode string `json:"zipCode"`
	City    string `json:"city"`
	Country string `json:"country"`
}
