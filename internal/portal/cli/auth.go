package cli

import (
	"context"
	"fmt"

	"github.com/veridoc/portal/internal/common"
	"github.com/veridoc/portal/internal/portal/api"
	"github.com/veridoc/portal/internal/portal/models"
)

// Login is the login page: email + password prompt, then session adoption.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		renderAlert(a.out, api.UserMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Email, user.Role)
	return nil
}

// Register is the registration page for regular users.
func (a *App) Register(ctx context.Context) error {
	return a.register(ctx, a.session.Register)
}

// RegisterAdmin creates an administrator account.
func (a *App) RegisterAdmin(ctx context.Context) error {
	return a.register(ctx, a.session.RegisterAdmin)
}

func (a *App) register(ctx context.Context, call registerFn) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}

	user, err := call(ctx, email, password, name)
	if err != nil {
		renderAlert(a.out, api.UserMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s (%s)\n", user.Email, user.Role)
	return nil
}

type registerFn = func(ctx context.Context, email, password, name string) (*models.User, error)

func (a *App) promptCredentials() (email, password string, err error) {
	email, err = getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return "", "", err
	}
	if !common.IsValidEmail(email) {
		renderAlert(a.out, "Please enter a valid email address")
		return "", "", fmt.Errorf("invalid email: %q", email)
	}
	password, err = getPassword(a.out, "Password")
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

// Logout clears the session and persisted token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout cleanup failed", "error", err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
