package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents user roles in the system
type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleAdmin      UserRole = "admin"
	RoleCustomer   UserRole = "customer"
)

// UserStatus represents the account lifecycle state
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
	UserStatusPending UserStatus = "pending"
)

// Address is an embedded shipping/billing address
type Address struct {
	Label      string `bson:"label" json:"label"`
	FullName   string `bson:"full_name" json:"full_name"`
	Phone      string `bson:"phone" json:"phone"`
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	Area       string `bson:"area,omitempty" json:"area,omitempty"`
	PostalCode string `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
	Country    string `bson:"country" json:"country"`
	IsDefault  bool   `bson:"is_default" json:"is_default"`
}

// User represents a user account
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role        UserRole           `bson:"role" json:"role"`
	Status      UserStatus         `bson:"status" json:"status"`
	Addresses   []Address          `bson:"addresses" json:"addresses"`
	TotalOrders int64              `bson:"total_orders" json:"total_orders"`
	TotalSpent  float64            `bson:"total_spent" json:"total_spent"`
	LastLoginAt *time.Time         `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time         `bson:"deleted_at,omitempty" json:"-"`
}

// IsBlocked reports whether the account is blocked
func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}

// IsAdminRole reports whether the user has any admin role
func (u *User) IsAdminRole() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// DefaultAddress returns the default address, or nil if none is set
func (u *User) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	return nil
}

// RefreshToken represents a persisted, revocable refresh token
type RefreshToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Token     string             `bson:"token" json:"token"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	Revoked   bool               `bson:"revoked" json:"revoked"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// IsValid reports whether the token can still be exchanged
func (t *RefreshToken) IsValid() bool {
	return !t.Revoked && time.Now().Before(t.ExpiresAt)
}
