// Package credstore persists WAPI account credentials in the OS keychain.
//
// The CLI uses it so that the account secret never has to live in a config
// file or shell history. Credentials are stored as a single JSON entry per
// service, keeping the user/secret pair consistent.
package credstore

import "errors"

// ServiceName is the keychain service under which credentials are stored.
const ServiceName = "wedosctl"

// accountKey is the keychain account name for the stored credential pair.
const accountKey = "wapi"

// ErrNotFound is returned when no credentials have been saved yet.
var ErrNotFound = errors.New("credentials not found")

// Credentials is a WAPI login pair as entered via "wedosctl auth login".
type Credentials struct {
	User   string `json:"user"`
	Secret string `json:"secret"`
}

// Store saves and retrieves WAPI credentials.
type Store interface {
	Save(creds Credentials) error
	Load() (Credentials, error)
	Delete() error
}

// DefaultStore returns the standard credential store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}
