// Package user contains domain types for the cached current-user profile.
// It is pure and free of transport and framework concerns.
package user

// Record is a raw profile record as returned by the users API.
// Nested relations (role, avatar) are map[string]any; any additional fields
// requested via field selectors are carried through untouched.
type Record map[string]any

// Well-known record keys.
const (
	FieldID          = "id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldAvatar      = "avatar"
	FieldRole        = "role"
	FieldLastPage    = "last_page"
	FieldShare       = "share"
	FieldAdminAccess = "admin_access"
	FieldAppAccess   = "app_access"
	FieldEnforceTFA  = "enforce_tfa"
)

// ID returns the user's primary key or "" when absent.
func (r Record) ID() string { return r.str(FieldID) }

// FirstName returns the first_name field.
func (r Record) FirstName() string { return r.str(FieldFirstName) }

// LastName returns the last_name field.
func (r Record) LastName() string { return r.str(FieldLastName) }

// Email returns the email field.
func (r Record) Email() string { return r.str(FieldEmail) }

// LastPage returns the last visited page recorded for the user.
func (r Record) LastPage() string { return r.str(FieldLastPage) }

// AvatarID returns avatar.id, or the avatar value itself when the relation was not expanded.
func (r Record) AvatarID() string {
	switch v := r[FieldAvatar].(type) {
	case string:
		return v
	case map[string]any:
		s, _ := v[FieldID].(string)
		return s
	}
	return ""
}

// Role returns the nested role object, or nil when the role was not expanded.
func (r Record) Role() Record {
	if m, ok := r[FieldRole].(map[string]any); ok {
		return m
	}
	if m, ok := r[FieldRole].(Record); ok {
		return m
	}
	return nil
}

// RoleID returns role.id. A collapsed role (plain string key) is returned as-is.
func (r Record) RoleID() string {
	if s, ok := r[FieldRole].(string); ok {
		return s
	}
	return r.Role().str(FieldID)
}

// AdminAccess reports role.admin_access == true. Absent or non-bool values are false.
func (r Record) AdminAccess() bool { return r.Role().flag(FieldAdminAccess) }

// AppAccess reports role.app_access == true.
func (r Record) AppAccess() bool { return r.Role().flag(FieldAppAccess) }

// EnforceTFA reports role.enforce_tfa == true.
func (r Record) EnforceTFA() bool { return r.Role().flag(FieldEnforceTFA) }

func (r Record) str(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

func (r Record) flag(key string) bool {
	if r == nil {
		return false
	}
	b, ok := r[key].(bool)
	return ok && b
}

// Clone returns a deep copy of the record. Nested maps and slices are copied;
// scalar values are shared.
func Clone(r Record) Record {
	if r == nil {
		return nil
	}
	out, _ := cloneValue(map[string]any(r)).(map[string]any)
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		return m
	case Record:
		return cloneValue(map[string]any(t))
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = cloneValue(val)
		}
		return s
	default:
		return v
	}
}

// DefaultFields is the field selection used for a full profile load.
func DefaultFields() []string {
	return []string{"*", "avatar.id", "role.admin_access", "role.app_access", "role.id", "role.enforce_tfa"}
}

// CloneValue deep-copies a decoded JSON value.
func CloneValue(v any) any { return cloneValue(v) }
