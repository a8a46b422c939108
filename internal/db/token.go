package db

const AccessTokenKey = "accessToken"

// TokenStore keeps the access token under a single storage key.
type TokenStore struct {
	storage Storage
}

func NewTokenStore(storage Storage) *TokenStore {
	return &TokenStore{storage: storage}
}

func (t *TokenStore) Token() (string, bool, error) {
	token, ok, err := t.storage.GetItem(AccessTokenKey)
	if err != nil || !ok || token == "" {
		return "", false, err
	}
	return token, true, nil
}

func (t *TokenStore) PutToken(token string) error {
	return t.storage.SetItem(AccessTokenKey, token)
}

func (t *TokenStore) RemoveToken() error {
	return t.storage.RemoveItem(AccessTokenKey)
}
