package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/app"
	"github.com/haiquanvn/aquamon/internal/model"
	"github.com/haiquanvn/aquamon/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRoutesToRoleDashboard(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()
	authService := service.NewAuthService(env.Client, env.Store)

	tests := []struct {
		name  string
		email string
		want  app.Route
	}{
		{"Admin", "admin@aquamon.vn", app.RouteAdminDashboard},
		{"Expert", "expert@aquamon.vn", app.RouteExpertDashboard},
		{"Manager", "manager.kh@aquamon.vn", app.RouteManagerDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := authService.Login(ctx, tt.email, "secret123")
			require.NoError(t, err)
			assert.Equal(t, tt.want, app.RouteFor(model.Role(profile.Role)))
			require.NoError(t, authService.Logout(ctx))
		})
	}
}

func TestLoginDecodesTokenIntoProfile(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()
	authService := service.NewAuthService(env.Client, env.Store)

	profile, err := authService.Login(ctx, "manager.vn@aquamon.vn", "secret123")
	require.NoError(t, err)

	assert.Equal(t, int64(4), profile.ID)
	assert.Equal(t, "Quan Ly Huyen", profile.Username)
	assert.Equal(t, "Khanh Hoa", profile.Province)
	require.NotNil(t, profile.District)
	assert.Equal(t, "Van Ninh", *profile.District)
	assert.False(t, profile.IsProvincialManager())
	assert.False(t, app.HasTab(app.DashboardFor(profile), app.TabUsers))
}

func TestLoginFailuresLeaveNoSession(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()
	authService := service.NewAuthService(env.Client, env.Store)

	_, err := authService.Login(ctx, "admin@aquamon.vn", "wrong-password")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)

	_, err = authService.Login(ctx, "disabled@aquamon.vn", "secret123")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	token, err := env.Store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

// The session outlives the process: a store reopened over the same directory
// still authenticates requests.
func TestSessionSurvivesRestart(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()
	authService := service.NewAuthService(env.Client, env.Store)

	_, err := authService.Login(ctx, "admin@aquamon.vn", "secret123")
	require.NoError(t, err)

	reopened := env.ReopenStore(t)
	profile, err := reopened.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "admin", profile.Role)

	client := api.New(env.Conf, reopened)
	users, err := client.Users(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, users)
}

func TestLogoutInvalidatesAuthedCalls(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()
	authService := service.NewAuthService(env.Client, env.Store)

	_, err := authService.Login(ctx, "admin@aquamon.vn", "secret123")
	require.NoError(t, err)

	_, err = env.Client.Users(ctx)
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx))

	// The client reads the token fresh, so the very next call goes out bare.
	_, err = env.Client.Users(ctx)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.False(t, errors.Is(err, api.ErrUnreachable))
}

func TestChangePasswordRoundTrip(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()
	authService := service.NewAuthService(env.Client, env.Store)

	profile, err := authService.Login(ctx, "expert@aquamon.vn", "secret123")
	require.NoError(t, err)

	err = authService.ChangePassword(ctx, profile.ID, "wrong-old", "newsecret")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)

	require.NoError(t, authService.ChangePassword(ctx, profile.ID, "secret123", "newsecret"))
	require.NoError(t, authService.Logout(ctx))

	_, err = authService.Login(ctx, "expert@aquamon.vn", "newsecret")
	require.NoError(t, err)
}
