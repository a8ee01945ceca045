package clients

//go:generate go run go.uber.org/mock/mockgen -destination=../token/mocks/mock_client_repo.go -package=mocks -mock_names=Repo=MockClientRepo -source=repo.go

import (
	"context"
	"errors"
)

var (
	ErrNoClients              = errors.New("at least one client is required")
	ErrInvalidCredentialEntry = errors.New("client credential entries must be formatted as id:secret")
)

// Repo is the client directory. Lookups match the client id
// case-insensitively and return oauth2.ErrNotFound (or a nil client) when no
// client exists. The token engine never writes clients.
type Repo interface {
	GetClientByID(ctx context.Context, clientID string) (*Client, error)
}
