package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-usersession/internal/adapters/memstore"
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	apperrors "github.com/target/mmk-usersession/internal/errors"
)

func newProfileService(t *testing.T) *ProfileService {
	t.Helper()
	svc, err := NewProfileService(ProfileServiceOptions{Store: memstore.NewProfileStore()})
	require.NoError(t, err)
	require.NoError(t, svc.Upsert(context.Background(), storedProfile()))
	return svc
}

func TestNewProfileService_RequiresStore(t *testing.T) {
	_, err := NewProfileService(ProfileServiceOptions{})
	require.Error(t, err)
}

func TestProfileService_Me(t *testing.T) {
	svc := newProfileService(t)

	rec, err := svc.Me(context.Background(), "u-1", []string{"role.id", "email"})
	require.NoError(t, err)
	assert.Equal(t, domainuser.Record{
		"email": "u-1@example.com",
		"role":  map[string]any{"id": "r-1"},
	}, rec)

	_, err = svc.Me(context.Background(), "", nil)
	assert.True(t, apperrors.IsUnauthorized(err))

	_, err = svc.Me(context.Background(), "ghost", nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProfileService_TrackPage(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	require.NoError(t, svc.TrackPage(ctx, "u-1", "/content/articles?page=2"))
	rec, err := svc.Me(ctx, "u-1", []string{"last_page"})
	require.NoError(t, err)
	assert.Equal(t, "/content/articles?page=2", rec.LastPage())

	err = svc.TrackPage(ctx, "u-1", "  ")
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "last_page", apperrors.GetField(err))
}

func TestProfileService_ShareProfile(t *testing.T) {
	svc := newProfileService(t)

	rec, err := svc.ShareProfile("share-1", "r-share", []string{"role.id"})
	require.NoError(t, err)
	assert.Equal(t, &domainuser.ShareUser{Share: "share-1", Role: domainuser.ShareRole{ID: "r-share"}}, domainuser.Decode(rec))

	_, err = svc.ShareProfile("share-1", "", []string{"bad..selector"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestProfileService_UpsertRequiresID(t *testing.T) {
	svc := newProfileService(t)
	err := svc.Upsert(context.Background(), domainuser.Record{"email": "x@example.com"})
	assert.True(t, apperrors.IsValidation(err))
}
