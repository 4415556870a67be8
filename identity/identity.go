// Package identity resolves bearer credentials to stable subject ids and
// exposes the administrative account-deletion call of the identity provider.
package identity

import "context"

// Verifier validates a bearer credential and returns the subject id of the
// calling user.
type Verifier interface {
	Verify(ctx context.Context, token string) (sub string, err error)
}

// AccountAdmin deletes an account from the identity provider.
type AccountAdmin interface {
	DeleteAccount(ctx context.Context, email string) error
}

// Provider is a full identity-provider client.
type Provider interface {
	Verifier
	AccountAdmin
}
