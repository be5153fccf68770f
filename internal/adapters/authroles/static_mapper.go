package authroles

import (
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	"github.com/target/mmk-usersession/internal/ports"
)

var _ ports.RoleMapper = StaticRoleMapper{}

// StaticRoleMapper classifies role ids by exact match against a configured table.
// Empty table entries never match.
type StaticRoleMapper struct {
	IDs domainuser.RoleIDs
}

// NewStaticRoleMapper builds a mapper over ids.
func NewStaticRoleMapper(ids domainuser.RoleIDs) StaticRoleMapper {
	return StaticRoleMapper{IDs: ids}
}

func (m StaticRoleMapper) Map(roleID string) domainuser.RoleKind {
	if roleID == "" {
		return domainuser.RoleKindNone
	}
	switch roleID {
	case m.IDs.Vendor:
		return domainuser.RoleKindVendor
	case m.IDs.Manager:
		return domainuser.RoleKindManager
	case m.IDs.Director:
		return domainuser.RoleKindDirector
	}
	return domainuser.RoleKindNone
}
