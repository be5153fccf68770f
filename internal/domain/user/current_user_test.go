package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   Record
		want CurrentUser
	}{
		{name: "nil record", in: nil, want: nil},
		{
			name: "share stub",
			in: Record{
				"share": "share-1",
				"role":  map[string]any{"id": "r-9", "admin_access": false, "app_access": false},
			},
			want: &ShareUser{Share: "share-1", Role: ShareRole{ID: "r-9"}},
		},
		{
			name: "authenticated",
			in:   Record{"id": "u-1", "email": "a@example.com"},
			want: &AuthenticatedUser{Record: Record{"id": "u-1", "email": "a@example.com"}},
		},
		{
			name: "empty share key is not a share session",
			in:   Record{"id": "u-1", "share": ""},
			want: &AuthenticatedUser{Record: Record{"id": "u-1", "share": ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.in))
		})
	}
}

func TestToRecord_ShareUserRoundTrip(t *testing.T) {
	share := &ShareUser{Share: "s-1", Role: ShareRole{ID: "r-1"}}
	rec := ToRecord(share)

	require.NotNil(t, rec)
	assert.False(t, rec.AdminAccess())
	assert.False(t, rec.AppAccess())
	assert.Equal(t, share, Decode(rec))
}

func TestRecordAccessors_TolerateMissingFields(t *testing.T) {
	var empty Record
	assert.Empty(t, empty.ID())
	assert.Empty(t, empty.RoleID())
	assert.False(t, empty.AdminAccess())

	collapsed := Record{"role": "r-1", "avatar": "f-1"}
	assert.Equal(t, "r-1", collapsed.RoleID())
	assert.Equal(t, "f-1", collapsed.AvatarID())
	assert.False(t, collapsed.AdminAccess())

	wrongType := Record{"role": map[string]any{"admin_access": "true"}}
	assert.False(t, wrongType.AdminAccess())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", DisplayName(Record{"first_name": "Ada", "last_name": "Lovelace"}))
	assert.Equal(t, "Ada", DisplayName(Record{"first_name": "Ada"}))
	assert.Equal(t, "ada@example.com", DisplayName(Record{"last_name": "Lovelace", "email": "ada@example.com"}))
	assert.Equal(t, UnknownUserName, DisplayName(Record{}))
}
