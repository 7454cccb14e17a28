package dashboard

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
)

const sessionCookie = "cart_session"

// SessionStore keeps one ephemeral cart per browser session. Carts live only
// in memory: abandoning the session abandons the cart.
type SessionStore struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewSessionStore() *SessionStore {
	return &SessionStore{carts: make(map[string]*domain.Cart)}
}

// Cart returns a copy of the session's cart so callers never share the
// underlying slice across sessions.
func (s *SessionStore) Cart(id string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[id]
	if !ok {
		return domain.Cart{}
	}
	lines := make([]domain.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	return domain.Cart{Lines: lines}
}

func (s *SessionStore) Add(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[id]
	if !ok {
		cart = &domain.Cart{}
		s.carts[id] = cart
	}
	cart.Add(name)
}

func (s *SessionStore) Remove(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.carts[id]; ok {
		cart.Remove(name)
	}
}

func (s *SessionStore) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}

// sessionID reads the cart cookie, minting a fresh id when the visitor has
// none yet.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	buf := make([]byte, 16)
	rand.Read(buf)
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}
