package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/adminpanel/internal/client/authprovider"
	"github.com/dmitrijs2005/adminpanel/internal/client/client"
	"github.com/dmitrijs2005/adminpanel/internal/client/config"
	"github.com/dmitrijs2005/adminpanel/internal/client/dataprovider"
	"github.com/dmitrijs2005/adminpanel/internal/client/repositories/session"
)

type App struct {
	config   *config.Config
	closer   io.Closer
	auth     *authprovider.Provider
	data     *dataprovider.Provider
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	repos, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := newApp(apiClient, repos.Session, os.Stdin, os.Stdout)
	a.config = c
	a.closer = repos
	return a, nil
}

// newApp assembles an App over an already built transport and session store.
func newApp(c *client.HTTPClient, sessions session.Repository, in io.Reader, out io.Writer) *App {
	auth := authprovider.New(c, sessions)
	c.SetTokenSource(auth)

	return &App{
		auth:   auth,
		data:   dataprovider.New(c),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run restores a saved session, if any, and serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	if a.closer != nil {
		defer a.closer.Close()
	}

	a.restoreSession(ctx)

	fmt.Fprintln(a.out, "Welcome to adminpanel CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restoreSession(ctx context.Context) {
	id, err := a.auth.GetIdentity(ctx)
	if err != nil {
		a.userName = ""
		return
	}
	a.userName = id.FullName
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.auth.CheckAuth(ctx) == nil
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// checkError lets the auth provider look at an API failure first. A rejected
// token ends the local session.
func (a *App) checkError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if aerr := a.auth.CheckError(ctx, err); errors.Is(aerr, client.ErrUnauthorized) {
		a.userName = ""
		return fmt.Errorf("session ended, please log in again: %w", err)
	}
	return err
}
