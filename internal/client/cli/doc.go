// Package cli provides the interactive recipebook command-line client.
//
// It wires configuration, the local session database, the HTTP gateway
// client and the client stores into a REPL. On start the saved session is
// resolved, a background watcher tracks server reachability, and user
// commands drive the stores, which keep the shown collections in sync.
//
// Commands:
//   - register / login / logout
//   - ingredients, search, addingredient, delingredient
//   - recipes, recipe, addrecipe, editrecipe, delrecipe, upload
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
