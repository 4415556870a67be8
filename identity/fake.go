package identity

import (
	"context"
	"errors"
)

// FakeProvider maps tokens to subjects in memory, for tests and local runs.
type FakeProvider struct {
	// Subjects maps token -> subject id.
	Subjects map[string]string
	// DeletedAccounts records emails passed to DeleteAccount.
	DeletedAccounts []string
	// FailDelete makes DeleteAccount return this error.
	FailDelete error
}

var _ Provider = (*FakeProvider)(nil)

var errUnknownToken = errors.New("unknown token")

func (f *FakeProvider) Verify(ctx context.Context, token string) (string, error) {
	if sub, ok := f.Subjects[token]; ok {
		return sub, nil
	}
	return "", errUnknownToken
}

func (f *FakeProvider) DeleteAccount(ctx context.Context, email string) error {
	if f.FailDelete != nil {
		return f.FailDelete
	}
	f.DeletedAccounts = append(f.DeletedAccounts, email)
	return nil
}
