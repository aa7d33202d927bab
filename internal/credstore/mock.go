package credstore

// MockStore is an in-memory credential store for testing.
type MockStore struct {
	creds *Credentials
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Save(creds Credentials) error {
	m.creds = &creds
	return nil
}

func (m *MockStore) Load() (Credentials, error) {
	if m.creds == nil {
		return Credentials{}, ErrNotFound
	}
	return *m.creds, nil
}

func (m *MockStore) Delete() error {
	if m.creds == nil {
		return ErrNotFound
	}
	m.creds = nil
	return nil
}
