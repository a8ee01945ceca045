package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
)

// tokenTable is the CRUD shared by access_tokens and refresh_tokens. The two
// tables differ only in name, key column and row type.
type tokenTable[T any] struct {
	db      *sql.DB
	table   string
	column  string
	build   func(tokenStr, clientID, userID, expiredAt string) T
	nowFunc func() time.Time
}

func newAccessTable(db *sql.DB, now func() time.Time) *tokenTable[*token.AccessToken] {
	return &tokenTable[*token.AccessToken]{
		db:     db,
		table:  "access_tokens",
		column: "access_token",
		build: func(tokenStr, clientID, userID, expiredAt string) *token.AccessToken {
			return &token.AccessToken{Token: tokenStr, ClientID: clientID, UserID: userID, ExpiredAt: expiredAt}
		},
		nowFunc: now,
	}
}

func newRefreshTable(db *sql.DB, now func() time.Time) *tokenTable[*refresh.StoredRefreshToken] {
	return &tokenTable[*refresh.StoredRefreshToken]{
		db:     db,
		table:  "refresh_tokens",
		column: "refresh_token",
		build: func(tokenStr, clientID, userID, expiredAt string) *refresh.StoredRefreshToken {
			return &refresh.StoredRefreshToken{Token: tokenStr, ClientID: clientID, UserID: userID, ExpiredAt: expiredAt}
		},
		nowFunc: now,
	}
}

func normaliseToken(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func (t *tokenTable[T]) columns() string {
	return t.column + ", client_id, user_id, expired_at"
}

func (t *tokenTable[T]) get(ctx context.Context, tokenStr string) (T, error) {
	var zero T
	row := t.db.QueryRowContext(ctx,
		`SELECT `+t.columns()+` FROM `+t.table+` WHERE `+t.column+` = ?`,
		normaliseToken(tokenStr),
	)

	var tok, clientID, userID, expiredAt string
	if err := row.Scan(&tok, &clientID, &userID, &expiredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, oauth2.ErrNotFound
		}
		return zero, fmt.Errorf("reading %s: %w", t.table, err)
	}
	return t.build(tok, clientID, userID, expiredAt), nil
}

func (t *tokenTable[T]) expired(ctx context.Context) ([]T, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT `+t.columns()+` FROM `+t.table+` WHERE expired_at <= ? ORDER BY expired_at, `+t.column,
		oauth2.FormatTimestamp(t.nowFunc()),
	)
	if err != nil {
		return nil, fmt.Errorf("querying expired %s: %w", t.table, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var tok, clientID, userID, expiredAt string
		if err := rows.Scan(&tok, &clientID, &userID, &expiredAt); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.table, err)
		}
		out = append(out, t.build(tok, clientID, userID, expiredAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", t.table, err)
	}
	return out, nil
}

func (t *tokenTable[T]) insert(ctx context.Context, tokenStr, clientID, userID, expiredAt string) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO `+t.table+` (`+t.columns()+`) VALUES (?, ?, ?, ?)`,
		normaliseToken(tokenStr), clientID, userID, expiredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inserting into %s: %w", t.table, ErrDuplicateToken)
		}
		return fmt.Errorf("inserting into %s: %w", t.table, err)
	}
	return nil
}

func (t *tokenTable[T]) delete(ctx context.Context, tokenStr string) error {
	if _, err := t.db.ExecContext(ctx,
		`DELETE FROM `+t.table+` WHERE `+t.column+` = ?`,
		normaliseToken(tokenStr),
	); err != nil {
		return fmt.Errorf("deleting from %s: %w", t.table, err)
	}
	return nil
}

func (t *tokenTable[T]) deleteExpired(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx,
		`DELETE FROM `+t.table+` WHERE expired_at <= ?`,
		oauth2.FormatTimestamp(t.nowFunc()),
	); err != nil {
		return fmt.Errorf("deleting expired %s: %w", t.table, err)
	}
	return nil
}

// AccessTokenStore implements token.AccessTokenRepo.
type AccessTokenStore struct {
	table *tokenTable[*token.AccessToken]
}

var _ token.AccessTokenRepo = (*AccessTokenStore)(nil)

func (s *AccessTokenStore) GetAccessToken(ctx context.Context, accessToken string) (*token.AccessToken, error) {
	return s.table.get(ctx, accessToken)
}

func (s *AccessTokenStore) GetExpiredAccessTokens(ctx context.Context) ([]*token.AccessToken, error) {
	return s.table.expired(ctx)
}

func (s *AccessTokenStore) InsertAccessToken(ctx context.Context, accessToken, clientID, userID, expiredAt string) error {
	return s.table.insert(ctx, accessToken, clientID, userID, expiredAt)
}

func (s *AccessTokenStore) DeleteAccessToken(ctx context.Context, accessToken string) error {
	return s.table.delete(ctx, accessToken)
}

func (s *AccessTokenStore) DeleteExpiredAccessTokens(ctx context.Context) error {
	return s.table.deleteExpired(ctx)
}

// RefreshTokenStore implements refresh.Repo.
type RefreshTokenStore struct {
	table *tokenTable[*refresh.StoredRefreshToken]
}

var _ refresh.Repo = (*RefreshTokenStore)(nil)

func (s *RefreshTokenStore) GetRefreshToken(ctx context.Context, refreshToken string) (*refresh.StoredRefreshToken, error) {
	return s.table.get(ctx, refreshToken)
}

func (s *RefreshTokenStore) GetExpiredRefreshTokens(ctx context.Context) ([]*refresh.StoredRefreshToken, error) {
	return s.table.expired(ctx)
}

func (s *RefreshTokenStore) InsertRefreshToken(ctx context.Context, refreshToken, clientID, userID, expiredAt string) error {
	return s.table.insert(ctx, refreshToken, clientID, userID, expiredAt)
}

func (s *RefreshTokenStore) DeleteRefreshToken(ctx context.Context, refreshToken string) error {
	return s.table.delete(ctx, refreshToken)
}

func (s *RefreshTokenStore) DeleteExpiredRefreshTokens(ctx context.Context) error {
	return s.table.deleteExpired(ctx)
}
