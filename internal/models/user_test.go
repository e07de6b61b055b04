package models

import (
	"encoding/json"
	"testing"
)

func TestUserRole_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		role     UserRole
		expected string
	}{
		{"Admin lowercase", UserRoleAdmin, `"admin"`},
		{"Supplier lowercase", UserRoleSupplier, `"supplier"`},
		{"ProcuringEntity lowercase", UserRoleProcuringEntity, `"procuring_entity"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.role)
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("MarshalJSON() = %v, want %v", string(got), tt.expected)
			}
		})
	}
}

func TestUserRole_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected UserRole
	}{
		{"Admin from lowercase", `"admin"`, UserRoleAdmin},
		{"Supplier from lowercase", `"supplier"`, UserRoleSupplier},
		{"Entity from uppercase", `"PROCURING_ENTITY"`, UserRoleProcuringEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got UserRole
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("UnmarshalJSON() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserRole_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		role     UserRole
		expected bool
	}{
		{"Admin is valid", UserRoleAdmin, true},
		{"Supplier is valid", UserRoleSupplier, true},
		{"Entity is valid", UserRoleProcuringEntity, true},
		{"Invalid role", UserRole("AUDITOR"), false},
		{"Empty role", UserRole(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUser_BeforeCreate(t *testing.T) {
	u := User{Email: "a@b.c", Role: UserRoleSupplier}
	u.BeforeCreate()

	if u.ID.IsZero() {
		t.Error("BeforeCreate() should assign an ID")
	}
	if !u.IsActive {
		t.Error("new users should be active")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("BeforeCreate() should set timestamps")
	}
}

func TestUser_CanLogin(t *testing.T) {
	u := User{IsActive: true}
	if !u.CanLogin() {
		t.Error("active user should be able to log in")
	}

	u.IsActive = false
	if u.CanLogin() {
		t.Error("deactivated user should not be able to log in")
	}
}

func TestUser_RoleHelpers(t *testing.T) {
	admin := User{Role: UserRoleAdmin}
	supplier := User{Role: UserRoleSupplier}
	entity := User{Role: UserRoleProcuringEntity}

	if !admin.IsAdmin() || admin.IsSupplier() || admin.IsProcuringEntity() {
		t.Error("admin role helpers inconsistent")
	}
	if !supplier.IsSupplier() || supplier.IsAdmin() {
		t.Error("supplier role helpers inconsistent")
	}
	if !entity.IsProcuringEntity() || entity.IsSupplier() {
		t.Error("entity role helpers inconsistent")
	}
}
