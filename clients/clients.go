package clients

import "strings"

type Client struct {
	ID     string `json:"client_id"`
	Secret string `json:"client_secret,omitempty"`
}

// Matches reports whether secret equals the client's secret, ignoring case
// and surrounding whitespace.
func (c *Client) Matches(secret string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Secret), strings.TrimSpace(secret))
}

// WithoutSecret returns a copy of the client with the secret stripped.
func (c *Client) WithoutSecret() *Client {
	return &Client{ID: c.ID}
}

// ParseCredentials parses a comma separated list of "id:secret" pairs.
// Empty entries are skipped; an entry without a colon or with an empty
// id or secret is an error.
func ParseCredentials(raw string) ([]*Client, error) {
	var out []*Client
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, secret, ok := strings.Cut(entry, ":")
		id, secret = strings.TrimSpace(id), strings.TrimSpace(secret)
		if !ok || id == "" || secret == "" {
			return nil, ErrInvalidCredentialEntry
		}
		out = append(out, &Client{ID: id, Secret: secret})
	}
	return out, nil
}
