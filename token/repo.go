package token

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_access_token_repo.go -package=mocks -mock_names=AccessTokenRepo=MockAccessTokenRepo -source=repo.go

import "context"

// AccessToken is an access token row.
type AccessToken struct {
	Token     string `json:"access_token"`
	ClientID  string `json:"client_id"`
	UserID    string `json:"user_id,omitempty"`
	ExpiredAt string `json:"expired_at"` // oauth2.TimestampLayout
}

// Complete reports whether the row carries every required field.
func (t *AccessToken) Complete() bool {
	return t != nil && t.Token != "" && t.ClientID != "" && t.ExpiredAt != ""
}

// AccessTokenRepo is the access token store. Tokens are matched
// case-insensitively. GetAccessToken returns oauth2.ErrNotFound (or a nil
// row) for unknown tokens and deleting an unknown token is not an error.
type AccessTokenRepo interface {
	GetAccessToken(ctx context.Context, token string) (*AccessToken, error)
	GetExpiredAccessTokens(ctx context.Context) ([]*AccessToken, error)
	InsertAccessToken(ctx context.Context, token, clientID, userID, expiredAt string) error
	DeleteAccessToken(ctx context.Context, token string) error
	DeleteExpiredAccessTokens(ctx context.Context) error
}
