package testutil

import (
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
)

// ProfileBuilder provides a fluent interface for building profile records for testing.
type ProfileBuilder struct {
	rec domainuser.Record
}

// NewProfile creates a ProfileBuilder with an app-access, non-admin role.
func NewProfile(id string) *ProfileBuilder {
	return &ProfileBuilder{
		rec: domainuser.Record{
			domainuser.FieldID:        id,
			domainuser.FieldFirstName: "Test",
			domainuser.FieldLastName:  "User",
			domainuser.FieldEmail:     id + "@example.com",
			domainuser.FieldRole: map[string]any{
				domainuser.FieldID:          "role-editor",
				domainuser.FieldAdminAccess: false,
				domainuser.FieldAppAccess:   true,
				domainuser.FieldEnforceTFA:  false,
			},
		},
	}
}

// WithRole sets role.id.
func (b *ProfileBuilder) WithRole(roleID string) *ProfileBuilder {
	b.role()[domainuser.FieldID] = roleID
	return b
}

// WithAdmin sets role.admin_access.
func (b *ProfileBuilder) WithAdmin(admin bool) *ProfileBuilder {
	b.role()[domainuser.FieldAdminAccess] = admin
	return b
}

// WithName sets first_name and last_name.
func (b *ProfileBuilder) WithName(first, last string) *ProfileBuilder {
	b.rec[domainuser.FieldFirstName] = first
	b.rec[domainuser.FieldLastName] = last
	return b
}

// WithAvatar expands the avatar relation with the given file id.
func (b *ProfileBuilder) WithAvatar(fileID string) *ProfileBuilder {
	b.rec[domainuser.FieldAvatar] = map[string]any{domainuser.FieldID: fileID, "type": "image/png"}
	return b
}

// WithField sets an arbitrary top-level field.
func (b *ProfileBuilder) WithField(key string, value any) *ProfileBuilder {
	b.rec[key] = value
	return b
}

// Build returns a copy of the built record.
func (b *ProfileBuilder) Build() domainuser.Record {
	return domainuser.Clone(b.rec)
}

func (b *ProfileBuilder) role() map[string]any {
	role, _ := b.rec[domainuser.FieldRole].(map[string]any)
	return role
}
