package domain_test

import (
	"testing"

	"github.com/spec-kit/rental-portal/internal/domain"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name string
		user domain.User
		want string
	}{
		{"both names", domain.User{Firstname: "Asha", Lastname: "Rao"}, "Asha Rao"},
		{"first only", domain.User{Firstname: "Asha"}, "Asha"},
		{"last only", domain.User{Lastname: "Rao"}, "Rao"},
		{"neither", domain.User{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTenantCountsLegacyRole(t *testing.T) {
	if !(domain.User{Role: domain.RoleUser}).IsTenant() {
		t.Error("legacy user role not counted as tenant")
	}
	if (domain.User{Role: domain.RoleOwner}).IsTenant() {
		t.Error("owner counted as tenant")
	}
}
