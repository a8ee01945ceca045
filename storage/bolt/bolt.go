// Package bolt persists clients and tokens in a single bbolt file. Each kind
// lives in its own bucket as JSON values keyed by the lowercased id.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/clients"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	bolt "go.etcd.io/bbolt"
)

const (
	dirPerm     = fs.FileMode(0o700)
	filePerm    = fs.FileMode(0o600)
	openTimeout = 5 * time.Second
)

var (
	clientsBucket       = []byte("clients")
	accessTokensBucket  = []byte("access_tokens")
	refreshTokensBucket = []byte("refresh_tokens")
)

// Store wraps the bbolt database and hands out the three repos.
type Store struct {
	db      *bolt.DB
	nowFunc func() time.Time
}

type Option func(*Store)

// WithNowFunc sets the clock used when sweeping expired tokens.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Store) {
		s.nowFunc = now
	}
}

// Open opens the database at path, creating the file, its directory and the
// buckets when missing.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("creating bolt directory: %w", err)
	}

	db, err := bolt.Open(path, filePerm, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{clientsBucket, accessTokensBucket, refreshTokensBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing bolt db: %w", err)
	}

	s := &Store{db: db, nowFunc: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Clients() *ClientStore {
	return &ClientStore{db: s.db}
}

func (s *Store) AccessTokens() *AccessTokenStore {
	return &AccessTokenStore{bucket: tokenBucket{db: s.db, name: accessTokensBucket, nowFunc: s.nowFunc}}
}

func (s *Store) RefreshTokens() *RefreshTokenStore {
	return &RefreshTokenStore{bucket: tokenBucket{db: s.db, name: refreshTokensBucket, nowFunc: s.nowFunc}}
}

func key(id string) []byte {
	return []byte(strings.ToLower(strings.TrimSpace(id)))
}

// ClientStore implements clients.Repo.
type ClientStore struct {
	db *bolt.DB
}

var _ clients.Repo = (*ClientStore)(nil)

func (s *ClientStore) GetClientByID(_ context.Context, clientID string) (*clients.Client, error) {
	var c *clients.Client
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(clientsBucket).Get(key(clientID))
		if v == nil {
			return nil
		}
		c = &clients.Client{}
		return json.Unmarshal(v, c)
	})
	if err != nil {
		return nil, fmt.Errorf("reading client: %w", err)
	}
	if c == nil {
		return nil, oauth2.ErrNotFound
	}
	return c, nil
}

// Upsert stores c, replacing any client whose id differs only in case.
func (s *ClientStore) Upsert(_ context.Context, c *clients.Client) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding client: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(clientsBucket).Put(key(c.ID), data)
	})
}

// Count returns the number of registered clients.
func (s *ClientStore) Count(_ context.Context) (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(clientsBucket).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting clients: %w", err)
	}
	return n, nil
}
