package guard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veridoc/portal/internal/portal/models"
)

func authed(role models.Role) models.Session {
	return models.Session{
		User:          &models.User{ID: 1, Role: role},
		Token:         "tok",
		Authenticated: true,
	}
}

func TestDecide_LoadingWinsOverEverything(t *testing.T) {
	st := authed(models.RoleAdmin)
	st.Loading = true
	require.Equal(t, ShowLoading, Decide(st))
	require.Equal(t, ShowLoading, Decide(st, models.RoleUser))

	require.Equal(t, ShowLoading, Decide(models.Session{Loading: true}))
}

func TestDecide_UnauthenticatedRedirectsToLogin(t *testing.T) {
	require.Equal(t, RedirectLogin, Decide(models.Session{}))
	require.Equal(t, RedirectLogin, Decide(models.Session{}, models.RoleAdmin))
}

func TestDecide_WrongRoleRedirectsToDashboard(t *testing.T) {
	d := Decide(authed(models.RoleUser), models.RoleInstitution, models.RoleAdmin)
	require.Equal(t, RedirectDashboard, d)
}

func TestDecide_AllowedRolePasses(t *testing.T) {
	require.Equal(t, Allow, Decide(authed(models.RoleAdmin), models.RoleInstitution, models.RoleAdmin))
	require.Equal(t, Allow, Decide(authed(models.RoleInstitution), models.RoleInstitution))
}

func TestDecide_NoRoleRestriction(t *testing.T) {
	for _, role := range []models.Role{models.RoleUser, models.RoleInstitution, models.RoleAdmin} {
		require.Equal(t, Allow, Decide(authed(role)))
	}
}

func TestDecide_AuthenticatedFlagWithoutUser(t *testing.T) {
	st := models.Session{Authenticated: true}
	require.Equal(t, RedirectLogin, Decide(st))
}
