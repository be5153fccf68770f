package user

// RoleKind classifies a role id against the configured role table.
type RoleKind string

const (
	RoleKindNone     RoleKind = ""
	RoleKindVendor   RoleKind = "vendor"
	RoleKindManager  RoleKind = "manager"
	RoleKindDirector RoleKind = "director"
)

// Role ids of the production deployment. They are environment specific and
// overridable through ROLE_VENDOR_ID, ROLE_MANAGER_ID and ROLE_DIRECTOR_ID.
const (
	DefaultVendorRoleID   = "b3ab233d-75bd-4477-8520-e4c3a4681bea"
	DefaultManagerRoleID  = "f0fa8dc0-6962-4d03-886d-650eafe194ed"
	DefaultDirectorRoleID = "cd62eb09-a31f-4659-92e0-cbfbff9574d8"
)

// RoleIDs is the table of role ids that map to a RoleKind.
type RoleIDs struct {
	Vendor   string
	Manager  string
	Director string
}

// DefaultRoleIDs returns the production role table.
func DefaultRoleIDs() RoleIDs {
	return RoleIDs{
		Vendor:   DefaultVendorRoleID,
		Manager:  DefaultManagerRoleID,
		Director: DefaultDirectorRoleID,
	}
}
