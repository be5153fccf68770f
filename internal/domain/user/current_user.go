package user

// CurrentUser is the sum of identities a session can hold: *AuthenticatedUser or
// *ShareUser. A nil CurrentUser means no user is signed in.
type CurrentUser interface {
	currentUser()
}

// AuthenticatedUser is a full profile tied to a real account.
type AuthenticatedUser struct {
	Record Record
}

// ShareRole is the role stub handed out to share sessions. It never grants access.
type ShareRole struct {
	ID string
}

// ShareUser is a restricted guest identity used for publicly shared links.
type ShareUser struct {
	Share string
	Role  ShareRole
}

func (*AuthenticatedUser) currentUser() {}
func (*ShareUser) currentUser() {}

// Decode classifies a record returned by the users API. Share sessions are
// answered with a stub carrying a non-empty share key.
//
//nolint:ireturn // sum type
func Decode(r Record) CurrentUser {
	if r == nil {
		return nil
	}
	if share, ok := r[FieldShare].(string); ok && share != "" {
		return &ShareUser{Share: share, Role: ShareRole{ID: r.RoleID()}}
	}
	return &AuthenticatedUser{Record: r}
}

// ToRecord renders a CurrentUser back into its wire shape.
func ToRecord(u CurrentUser) Record {
	switch v := u.(type) {
	case *AuthenticatedUser:
		return Clone(v.Record)
	case *ShareUser:
		return Record{
			FieldShare: v.Share,
			FieldRole: map[string]any{
				FieldID:          v.Role.ID,
				FieldAdminAccess: false,
				FieldAppAccess:   false,
			},
		}
	}
	return nil
}

// CloneUser returns a deep copy of u.
//
//nolint:ireturn // sum type
func CloneUser(u CurrentUser) CurrentUser {
	switch v := u.(type) {
	case *AuthenticatedUser:
		return &AuthenticatedUser{Record: Clone(v.Record)}
	case *ShareUser:
		cp := *v
		return &cp
	}
	return nil
}

// Destination is a navigation target as reported by the router.
type Destination struct {
	Path     string // route pattern, e.g. /content/:collection
	FullPath string // resolved URL including query
}
