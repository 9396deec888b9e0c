package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
	"github.com/dmitrijs2005/sehatbeat/internal/common"
)

// login reads an identity token and keeps it in the session when the
// identity provider accepts it. Views mounted for the previous identity are
// dropped.
func (a *App) login(ctx context.Context, _ []string) error {
	if !a.settings.IdentityConfigured() {
		a.println("Identity provider is not configured")
		if dev := a.settings.DevUserID(); dev != "" {
			a.println("Using development user", dev)
		}
		return nil
	}

	token, err := getSecret(a.out, "Enter identity token")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	a.session.SetToken(strings.TrimSpace(string(token)))
	subject, ok := a.resolver.Resolve(ctx)
	if !ok {
		a.session.Clear()
		a.println("Login unsuccessful")
		return nil
	}

	a.reset()
	a.println("Logged in as", subject)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if a.session.Token() == "" {
		a.println("Not logged in")
		return nil
	}
	a.session.Clear()
	a.reset()
	a.println("Logged out")
	return nil
}

// whoami prints the identity and, with the backend on, the profile behind
// it.
func (a *App) whoami(ctx context.Context, _ []string) error {
	if subject, ok := a.subject(); ok {
		a.println("Subject:", subject)
	} else if dev := a.settings.DevUserID(); dev != "" {
		a.println("Development user:", dev)
	} else {
		a.println("Nobody is signed in")
	}

	q := hooks.UseCurrentUser(ctx, a.env)
	defer q.Close()

	profile, err := snapshot(q)
	if err != nil {
		return err
	}
	if profile == nil {
		return errNotLoaded
	}
	a.printf("Profile: %s\n", profile.ID)
	if profile.Name != "" {
		a.printf("Name: %s\n", profile.Name)
	}
	if profile.Email != "" {
		a.printf("Email: %s\n", profile.Email)
	}
	a.printf("Since: %s\n", formatTime(profile.CreatedAt))
	return nil
}
