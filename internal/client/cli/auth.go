package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login authenticates against the API and stores the session. The username
// may be passed as the first argument; otherwise it is prompted for.
func (a *App) Login(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}

	var userName string
	if len(args) == 1 {
		userName = args[0]
	} else {
		var err error
		userName, err = getSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, userName, string(password))
	if err != nil {
		return err
	}

	a.userName = user.Name
	fmt.Fprintf(a.out, "Logged in as %s\n", user.Name)
	return nil
}

// Logout drops the stored session.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the identity of the stored session.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	id, err := a.auth.GetIdentity(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d %s\n", id.ID, id.FullName)
	return nil
}
