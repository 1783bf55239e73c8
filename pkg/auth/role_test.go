package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  RoleClass
	}{
		{"nil", nil, RoleUnrecognized},
		{"empty", []string{}, RoleUnrecognized},
		{"unknown only", []string{"guest", "auditor"}, RoleUnrecognized},
		{"staff", []string{RoleStaffName}, RoleStaff},
		{"moderator", []string{RoleModeratorName}, RoleModerator},
		{"admin", []string{RoleAdminName}, RoleAdmin},
		{"admin outranks moderator", []string{RoleModeratorName, RoleAdminName}, RoleAdmin},
		{"moderator outranks staff", []string{RoleStaffName, "guest", RoleModeratorName}, RoleModerator},
		{"case sensitive", []string{"Admin"}, RoleUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.roles))
		})
	}
}

func TestRoleClass_String(t *testing.T) {
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "moderator", RoleModerator.String())
	assert.Equal(t, "staff", RoleStaff.String())
	assert.Equal(t, "unrecognized", RoleUnrecognized.String())
}
