package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
)

func TestStaticRoleMapper_Map(t *testing.T) {
	m := NewStaticRoleMapper(domainuser.DefaultRoleIDs())

	tests := []struct {
		roleID string
		want   domainuser.RoleKind
	}{
		{domainuser.DefaultVendorRoleID, domainuser.RoleKindVendor},
		{domainuser.DefaultManagerRoleID, domainuser.RoleKindManager},
		{domainuser.DefaultDirectorRoleID, domainuser.RoleKindDirector},
		{"some-other-role", domainuser.RoleKindNone},
		{"", domainuser.RoleKindNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Map(tt.roleID), tt.roleID)
	}
}

func TestStaticRoleMapper_EmptyEntriesNeverMatch(t *testing.T) {
	m := NewStaticRoleMapper(domainuser.RoleIDs{Vendor: "v-1"})

	assert.Equal(t, domainuser.RoleKindVendor, m.Map("v-1"))
	assert.Equal(t, domainuser.RoleKindNone, m.Map(""))
}
