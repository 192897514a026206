package entity

import (
	"testing"
)

func TestUserIsBlocked(t *testing.T) {
	tests := []struct {
		name   string
		status UserStatus
		want   bool
	}{
		{"active", UserStatusActive, false},
		{"pending", UserStatusPending, false},
		{"blocked", UserStatusBlocked, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Status: tt.status}
			if got := u.IsBlocked(); got != tt.want {
				t.Errorf("IsBlocked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserIsAdminRole(t *testing.T) {
	tests := []struct {
		name string
		role UserRole
		want bool
	}{
		{"customer", RoleCustomer, false},
		{"admin", RoleAdmin, true},
		{"super admin", RoleSuperAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsAdminRole(); got != tt.want {
				t.Errorf("IsAdminRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserDefaultAddress(t *testing.T) {
	u := &User{Addresses: []Address{
		{Label: "Home"},
		{Label: "Office", IsDefault: true},
	}}

	addr := u.DefaultAddress()
	if addr == nil || addr.Label != "Office" {
		t.Errorf("DefaultAddress() = %+v, want Office", addr)
	}

	none := &User{}
	if none.DefaultAddress() != nil {
		t.Error("DefaultAddress() should be nil without addresses")
	}
}
