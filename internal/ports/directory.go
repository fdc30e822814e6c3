package ports

import "context"

// Owner is the identity controlling a subset of pieces, distinct from the
// transport-level session token used to authenticate a connection.
type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Color    string `json:"color"`
}

// OwnerDirectory maps registrations and session tokens to owner identities.
// The sync engine never mutates the directory; it only attributes moves.
type OwnerDirectory interface {
	// Register validates the requested profile, allocates an owner id with
	// its starter pieces, and returns the owner plus a signed session token.
	Register(ctx context.Context, username, color string) (Owner, string, error)

	// Resolve maps a session token back to its owner. ok is false for
	// invalid, expired or unknown tokens.
	Resolve(ctx context.Context, token string) (Owner, bool)
}
