package autosend

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var (
	ErrTokenNotFound = errors.New("auto-send token not found or expired")
	ErrTokenConsumed = errors.New("auto-send token already consumed")
)

// Token is a message queued to be sent once the client lands on the chat view.
type Token struct {
	Id        string
	UserKey   string
	Text      string
	ExpiresAt time.Time

	consumed atomic.Bool
}

// Registry holds issued tokens until they are consumed or expire.
// Consumed tokens stay until expiry so a replay is reported as such.
type Registry struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (r *Registry) Issue(userKey, text string) *Token {
	t := &Token{
		Id:        uuid.NewString(),
		UserKey:   userKey,
		Text:      text,
		ExpiresAt: time.Now().Add(r.ttl),
	}
	r.cache.Set(t.Id, t, r.ttl)
	return t
}

// Consume returns the token text exactly once. A token owned by another user
// is reported as not found.
func (r *Registry) Consume(userKey, tokenId string) (string, error) {
	v, ok := r.cache.Get(tokenId)
	if !ok {
		return "", ErrTokenNotFound
	}
	t := v.(*Token)
	if t.UserKey != userKey {
		return "", ErrTokenNotFound
	}
	if !t.consumed.CompareAndSwap(false, true) {
		return "", ErrTokenConsumed
	}
	return t.Text, nil
}

// Release makes a consumed token usable again, for when the queued text could
// not be delivered. Unknown or foreign tokens are ignored.
func (r *Registry) Release(userKey, tokenId string) {
	v, ok := r.cache.Get(tokenId)
	if !ok {
		return
	}
	if t := v.(*Token); t.UserKey == userKey {
		t.consumed.Store(false)
	}
}
