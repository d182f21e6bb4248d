// Package vault resolves configuration secrets stored in Hashicorp Vault.
package vault

import (
	"strings"

	"github.com/hashicorp/vault/api"

	"github.com/sanLimbu/tasks-api/internal"
)

// Provider reads secrets from a Vault KV engine.
type Provider struct {
	path   string
	client *api.Logical
}

// New instantiates the Vault client.
func New(token, addr, path string) (*Provider, error) {
	config := api.DefaultConfig()
	if addr != "" {
		config.Address = addr
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "api.NewClient")
	}

	if token != "" {
		client.SetToken(token)
	}

	return &Provider{
		path:   path,
		client: client.Logical(),
	}, nil
}

// Get retrieves the value from Vault, the key has the form `<path>:<field>`; when path is omitted the
// default path configured in New is used.
func (p *Provider) Get(v string) (string, error) {
	path, key := p.path, v

	if i := strings.LastIndex(v, ":"); i != -1 {
		path, key = v[:i], v[i+1:]
	}

	res, err := p.client.Read(path)
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "reading")
	}

	if res == nil {
		return "", internal.NewErrorf(internal.ErrorCodeNotFound, "secret path not found")
	}

	// KV v2 engines nest the values under "data".
	data := res.Data
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}

	val, ok := data[key].(string)
	if !ok {
		return "", internal.NewErrorf(internal.ErrorCodeNotFound, "key not found")
	}

	return val, nil
}
