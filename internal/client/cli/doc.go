// Package cli provides the interactive SehatBeat command-line client.
//
// It wires configuration, the identity session, the backend client, the
// local document store and the entity hooks behind a small REPL. Each command
// mounts the hooks it needs; mounted hooks stay live until logout, login or
// a failed command resets the REPL to its root view.
//
// Key features:
//   - Login / Logout with an identity token read without echo
//   - Catalog browsing: medicines, doctors
//   - Cart, reminders, lab tests, appointments, orders
//   - Clinical documents with a local, encrypted fallback
//   - Assistant conversation
//   - Watching any entity for pushed updates
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
