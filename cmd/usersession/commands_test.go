package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-usersession/config"
	"github.com/target/mmk-usersession/internal/adapters/authroles"
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	"github.com/target/mmk-usersession/internal/mocks/userapi"
	"github.com/target/mmk-usersession/internal/service"
	"github.com/target/mmk-usersession/internal/testutil"
)

func newCommandContext(t *testing.T, api *userapi.FakeUserAPI) (*commandContext, *bytes.Buffer) {
	t.Helper()
	sess, err := service.NewUserSession(service.UserSessionOptions{
		API:   api,
		Roles: authroles.NewStaticRoleMapper(domainuser.DefaultRoleIDs()),
	})
	require.NoError(t, err)

	var out bytes.Buffer
	return &commandContext{
		Ctx:    service.WithSession(context.Background(), sess),
		Config: config.AppConfig{Roles: config.RoleConfig{VendorID: "v-1", ManagerID: "m-1", DirectorID: "d-1"}},
		Out:    &out,
	}, &out
}

func TestWhoAmI(t *testing.T) {
	api := userapi.NewFakeUserAPI(testutil.NewProfile("u-1").
		WithName("Ada", "Lovelace").
		WithRole(domainuser.DefaultManagerRoleID).
		Build())
	ctx, out := newCommandContext(t, api)

	require.NoError(t, runWhoAmI(ctx, nil))

	var got summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "authenticated", got.Kind)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.True(t, got.IsManager)
	assert.False(t, got.IsAdmin)
	assert.Equal(t, "u-1", got.User.ID())
}

func TestRefresh(t *testing.T) {
	api := userapi.NewFakeUserAPI(testutil.NewProfile("u-1").Build())
	ctx, _ := newCommandContext(t, api)

	require.Error(t, runRefresh(ctx, nil))
	require.NoError(t, runRefresh(ctx, []string{"avatar.id"}))

	calls := api.GetCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"avatar.id"}, calls[1])
}

func TestTrack(t *testing.T) {
	api := userapi.NewFakeUserAPI(testutil.NewProfile("u-1").Build())
	ctx, out := newCommandContext(t, api)

	require.Error(t, runTrack(ctx, nil))
	require.NoError(t, runTrack(ctx, []string{"/content", "/content?page=2"}))

	assert.Equal(t, []string{"/content?page=2"}, api.TrackCalls())
	assert.JSONEq(t, `{"last_page":"/content?page=2"}`, out.String())
}

func TestLoadSession_Errors(t *testing.T) {
	_, err := loadSession(&commandContext{Ctx: context.Background()})
	require.ErrorIs(t, err, errNoSession)

	api := userapi.NewFakeUserAPI(nil)
	api.GetFunc = func(context.Context, []string) (domainuser.Record, error) {
		return nil, assert.AnError
	}
	ctx, _ := newCommandContext(t, api)
	require.ErrorIs(t, runWhoAmI(ctx, nil), assert.AnError)
}

func TestRoles(t *testing.T) {
	ctx, out := newCommandContext(t, userapi.NewFakeUserAPI(nil))
	require.NoError(t, runRoles(ctx, nil))
	assert.Contains(t, out.String(), "vendor")
	assert.Contains(t, out.String(), "v-1")
	assert.Contains(t, out.String(), "d-1")
}

func TestPrintUsage_ListsCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))
	for name := range commands() {
		assert.Contains(t, buf.String(), name)
	}
}
