// Package devseed inserts demo users into the development users API.
package devseed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
)

// seedNamespace keeps seeded ids stable across restarts so configured tokens
// keep pointing at the same users.
var seedNamespace = uuid.MustParse("6f1c8a52-4b7e-4d0a-9a57-2f4f3c1d8e10")

// Upserter stores a profile under its id.
type Upserter interface {
	Upsert(ctx context.Context, rec domainuser.Record) error
}

// User describes one seeded account.
type User struct {
	Key  string
	ID   string
	Kind domainuser.RoleKind
}

type seed struct {
	key, first, last string
	kind             domainuser.RoleKind
	admin            bool
}

var seeds = []seed{
	{key: "admin", first: "Ada", last: "Admin", admin: true},
	{key: "vendor", first: "Vera", last: "Vendor", kind: domainuser.RoleKindVendor},
	{key: "manager", first: "Milo", last: "Manager", kind: domainuser.RoleKindManager},
	{key: "director", first: "Dana", last: "Director", kind: domainuser.RoleKindDirector},
}

const editorRoleID = "8b0e6c2a-3f9d-4c55-9a41-7d2e5b6f0c13"

// UserID returns the stable id of the seeded user with the given key.
func UserID(key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(key)).String()
}

// Seed upserts the demo users and returns them in a fixed order.
func Seed(ctx context.Context, store Upserter, roles domainuser.RoleIDs, logger *slog.Logger) ([]User, error) {
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]User, 0, len(seeds))
	for _, s := range seeds {
		id := UserID(s.key)
		rec := domainuser.Record{
			domainuser.FieldID:        id,
			domainuser.FieldFirstName: s.first,
			domainuser.FieldLastName:  s.last,
			domainuser.FieldEmail:     s.key + "@example.com",
			domainuser.FieldAvatar:    nil,
			domainuser.FieldLastPage:  nil,
			domainuser.FieldRole: map[string]any{
				domainuser.FieldID:          roleIDFor(s.kind, roles),
				domainuser.FieldAdminAccess: s.admin,
				domainuser.FieldAppAccess:   true,
				domainuser.FieldEnforceTFA:  false,
			},
		}
		if err := store.Upsert(ctx, rec); err != nil {
			return nil, fmt.Errorf("seed %s: %w", s.key, err)
		}
		out = append(out, User{Key: s.key, ID: id, Kind: s.kind})
	}

	logger.InfoContext(ctx, "seeded development users", "count", len(out))
	return out, nil
}

func roleIDFor(kind domainuser.RoleKind, roles domainuser.RoleIDs) string {
	switch kind {
	case domainuser.RoleKindVendor:
		return roles.Vendor
	case domainuser.RoleKindManager:
		return roles.Manager
	case domainuser.RoleKindDirector:
		return roles.Director
	default:
		return editorRoleID
	}
}
