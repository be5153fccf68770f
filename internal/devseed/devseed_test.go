package devseed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-usersession/internal/adapters/authroles"
	"github.com/target/mmk-usersession/internal/adapters/memstore"
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	"github.com/target/mmk-usersession/internal/service"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewProfileStore()
	svc, err := service.NewProfileService(service.ProfileServiceOptions{Store: store})
	require.NoError(t, err)

	roles := domainuser.DefaultRoleIDs()
	users, err := Seed(ctx, svc, roles, nil)
	require.NoError(t, err)
	require.Len(t, users, len(seeds))

	mapper := authroles.NewStaticRoleMapper(roles)
	for _, u := range users {
		assert.Equal(t, UserID(u.Key), u.ID)
		rec, getErr := store.Get(ctx, u.ID)
		require.NoError(t, getErr)
		assert.Equal(t, u.Kind, mapper.Map(rec.RoleID()), u.Key)
		assert.Equal(t, u.Key == "admin", rec.AdminAccess(), u.Key)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewProfileStore()
	svc, err := service.NewProfileService(service.ProfileServiceOptions{Store: store})
	require.NoError(t, err)

	first, err := Seed(ctx, svc, domainuser.DefaultRoleIDs(), nil)
	require.NoError(t, err)
	second, err := Seed(ctx, svc, domainuser.DefaultRoleIDs(), nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUserID_Stable(t *testing.T) {
	assert.Equal(t, UserID("admin"), UserID("admin"))
	assert.NotEqual(t, UserID("admin"), UserID("vendor"))
}
