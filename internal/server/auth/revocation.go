package auth

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultRevocationCapacity bounds the number of remembered revoked tokens.
const DefaultRevocationCapacity = 10000

// RevocationList remembers signed-out access tokens until they would have
// expired anyway. When the list is full the oldest entries are evicted.
type RevocationList struct {
	cache *lru.Cache
	now   func() time.Time
}

func NewRevocationList(capacity int) (*RevocationList, error) {
	c, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &RevocationList{cache: c, now: time.Now}, nil
}

// Revoke marks the token id as unusable until expires.
func (r *RevocationList) Revoke(jti string, expires time.Time) {
	if jti == "" {
		return
	}
	r.cache.Add(jti, expires)
}

// IsRevoked reports whether jti was revoked and has not yet expired.
func (r *RevocationList) IsRevoked(jti string) bool {
	v, ok := r.cache.Get(jti)
	if !ok {
		return false
	}
	expires, _ := v.(time.Time)
	if r.now().After(expires) {
		r.cache.Remove(jti)
		return false
	}
	return true
}

// Len is the number of tracked tokens.
func (r *RevocationList) Len() int {
	return r.cache.Len()
}
