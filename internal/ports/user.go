package ports

// Package ports defines interfaces (hexagonal ports) for current-user behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainuser "github.com/target/mmk-usersession/internal/domain/user"
)

// UserAPI talks to the remote users endpoint on behalf of the signed-in user.
type UserAPI interface {
	// GetCurrentUser fetches /users/me restricted to the given field selectors.
	GetCurrentUser(ctx context.Context, fields []string) (domainuser.Record, error)

	// TrackPage records the user's last visited page.
	TrackPage(ctx context.Context, lastPage string) error
}

// RoleMapper classifies a role id against the configured role table.
type RoleMapper interface {
	Map(roleID string) domainuser.RoleKind
}

// NameFormatter renders a record's name fields as a single display string.
type NameFormatter func(domainuser.Record) string

// ProfileStore persists user profiles served by the development users API.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (domainuser.Record, error)
	Save(ctx context.Context, userID string, rec domainuser.Record) error
	SetLastPage(ctx context.Context, userID, lastPage string) error
}
