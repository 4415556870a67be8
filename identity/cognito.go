package identity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/pkg/errors"
)

// CognitoProvider implements Provider against an AWS Cognito user pool.
type CognitoProvider struct {
	client     *cognitoidentityprovider.Client
	userPoolID string
}

var _ Provider = (*CognitoProvider)(nil)

// NewCognitoProvider creates a client with the aws config located in the
// default chain (~/.aws/config, env, instance role).
func NewCognitoProvider(ctx context.Context, userPoolID string) (*CognitoProvider, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return &CognitoProvider{
		client:     cognitoidentityprovider.NewFromConfig(cfg),
		userPoolID: userPoolID,
	}, nil
}

// Verify asks Cognito to resolve the access token. On success the returned
// value is the user's sub attribute, falling back to the username when the
// attribute list does not carry one.
func (p *CognitoProvider) Verify(ctx context.Context, token string) (string, error) {
	out, err := p.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{AccessToken: &token})
	if err != nil {
		return "", errors.Wrap(err, "verify access token")
	}

	if sub := attributeValue(out.UserAttributes, "sub"); sub != "" {
		return sub, nil
	}
	return *out.Username, nil
}

// DeleteAccount removes the user from the pool through the admin interface.
func (p *CognitoProvider) DeleteAccount(ctx context.Context, email string) error {
	_, err := p.client.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		Username:   &email,
		UserPoolId: &p.userPoolID,
	})
	return errors.Wrap(err, "admin delete user")
}

func attributeValue(attrs []types.AttributeType, name string) string {
	for _, a := range attrs {
		if a.Name != nil && *a.Name == name && a.Value != nil {
			return *a.Value
		}
	}
	return ""
}
