package refresh

//go:generate go run go.uber.org/mock/mockgen -destination=../mocks/mock_refresh_token_repo.go -package=mocks -mock_names=Repo=MockRefreshTokenRepo -source=repo.go

import "context"

// StoredRefreshToken is a refresh token row. The client only receives the
// Token field; the rest is server-side metadata checked on every refresh.
type StoredRefreshToken struct {
	Token     string `json:"refresh_token"`
	ClientID  string `json:"client_id"`
	UserID    string `json:"user_id"`
	ExpiredAt string `json:"expired_at"` // oauth2.TimestampLayout
}

// Complete reports whether the row carries every required field.
func (t *StoredRefreshToken) Complete() bool {
	return t != nil && t.Token != "" && t.ClientID != "" && t.ExpiredAt != ""
}

// Repo is the refresh token store. Tokens are matched case-insensitively.
// Get returns oauth2.ErrNotFound (or a nil row) for unknown tokens and Delete
// of an unknown token is not an error.
type Repo interface {
	GetRefreshToken(ctx context.Context, token string) (*StoredRefreshToken, error)
	GetExpiredRefreshTokens(ctx context.Context) ([]*StoredRefreshToken, error)
	InsertRefreshToken(ctx context.Context, token, clientID, userID, expiredAt string) error
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteExpiredRefreshTokens(ctx context.Context) error
}
