// Package cli provides the interactive adminpanel command-line client.
//
// It wires configuration, the local session store, the auth and data
// providers, and an interactive REPL. A session saved by an earlier run is
// picked up on start, so a user stays logged in until the token is rejected
// or they log out.
//
// Commands:
//   - login [username] / logout / whoami
//   - list <resource> [page] [perPage] [field] [ASC|DESC] [key=value...]
//   - get <resource> <id...>
//   - refs <resource> <target> <id>
//   - create <resource> key=value...
//   - update <resource> <id...> key=value...
//   - delete <resource> <id...>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
