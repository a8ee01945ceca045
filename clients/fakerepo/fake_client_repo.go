package fakeclientrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/jrsteele09/go-oauth-tokens/clients"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
)

var _ clients.Repo = (*FakeClientRepo)(nil)

// FakeClientRepo is an in-memory client directory keyed by lowercased id.
type FakeClientRepo struct {
	clients map[string]*clients.Client
	lock    sync.RWMutex
}

// NewFakeClientRepo builds a directory from a fixed client list. An empty
// list is rejected.
func NewFakeClientRepo(seed ...*clients.Client) (*FakeClientRepo, error) {
	if len(seed) == 0 {
		return nil, clients.ErrNoClients
	}
	r := &FakeClientRepo{
		clients: make(map[string]*clients.Client, len(seed)),
	}
	for _, c := range seed {
		r.Upsert(c)
	}
	return r, nil
}

func (r *FakeClientRepo) Upsert(clientData *clients.Client) {
	r.lock.Lock()
	defer r.lock.Unlock()
	stored := *clientData
	r.clients[strings.ToLower(strings.TrimSpace(clientData.ID))] = &stored
}

func (r *FakeClientRepo) GetClientByID(_ context.Context, clientID string) (*clients.Client, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	client, ok := r.clients[strings.ToLower(strings.TrimSpace(clientID))]
	if !ok {
		return nil, oauth2.ErrNotFound
	}
	c := *client
	return &c, nil
}
