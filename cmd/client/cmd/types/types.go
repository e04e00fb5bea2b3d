// Package types holds the context keys shared between the command tree and
// its subpackages.
package types

type contextKey string

// ClientAppKey carries the wired *client.App through the cobra command
// context.
const ClientAppKey contextKey = "client_app"
