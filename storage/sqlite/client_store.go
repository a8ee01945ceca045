package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-oauth-tokens/clients"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
)

// ClientStore implements clients.Repo over the clients table.
type ClientStore struct {
	db *sql.DB
}

var _ clients.Repo = (*ClientStore)(nil)

func (s *ClientStore) GetClientByID(ctx context.Context, clientID string) (*clients.Client, error) {
	var c clients.Client
	err := s.db.QueryRowContext(ctx,
		`SELECT client_id, client_secret FROM clients WHERE client_id = ?`,
		strings.TrimSpace(clientID),
	).Scan(&c.ID, &c.Secret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, oauth2.ErrNotFound
		}
		return nil, fmt.Errorf("reading client: %w", err)
	}
	return &c, nil
}

// Upsert creates the client or replaces its secret.
func (s *ClientStore) Upsert(ctx context.Context, c *clients.Client) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (client_id, client_secret) VALUES (?, ?)
		ON CONFLICT (client_id) DO UPDATE SET client_secret = excluded.client_secret`,
		strings.TrimSpace(c.ID), c.Secret,
	); err != nil {
		return fmt.Errorf("upserting client: %w", err)
	}
	return nil
}

// Count returns the number of registered clients.
func (s *ClientStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting clients: %w", err)
	}
	return n, nil
}
