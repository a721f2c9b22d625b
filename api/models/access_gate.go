package models

import (
	"net/http"
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/gorilla/securecookie"
	"golang.org/x/time/rate"

	"github.com/moyoez/localshare-go/tool"
	"github.com/moyoez/localshare-go/types"
)

const (
	PinCookieName  = "pin-verified"
	pinCookieValue = "true"
	attemptWindow  = time.Minute
	attemptIdleTTL = 10 * time.Minute
)

// AccessGate holds the optional 4-digit PIN that protects browsing.
type AccessGate struct {
	mu      sync.RWMutex
	pin     string
	enabled bool

	codec    *securecookie.SecureCookie // nil: plain "true" cookie
	attempts *ttlworker.Cache[string, *rate.Limiter]
	// limiterMu makes the per-client get-or-create atomic.
	limiterMu sync.Mutex
	perMin   int
}

// GateOption configures an AccessGate.
type GateOption func(*AccessGate)

// WithSignedCookie signs the pin-verified cookie with a key that lives for the process.
// Plain "pin-verified=true" cookies are then refused.
func WithSignedCookie() GateOption {
	return func(g *AccessGate) {
		g.codec = securecookie.New(securecookie.GenerateRandomKey(32), nil)
	}
}

// WithAttemptLimit caps PIN submissions per client per minute. Zero or less disables it.
func WithAttemptLimit(perMinute int) GateOption {
	return func(g *AccessGate) {
		g.perMin = perMinute
	}
}

func NewAccessGate(opts ...GateOption) *AccessGate {
	g := &AccessGate{}
	for _, opt := range opts {
		opt(g)
	}
	if g.perMin > 0 {
		g.attempts = ttlworker.NewCache[string, *rate.Limiter](attemptIdleTTL)
	}
	return g
}

// Generate replaces any PIN with a fresh one and turns protection on.
func (g *AccessGate) Generate() (string, error) {
	pin, err := tool.GeneratePin()
	if err != nil {
		return "", err
	}
	g.mu.Lock()
	g.pin = pin
	g.enabled = true
	g.mu.Unlock()
	tool.DefaultLogger.Infof("[Pin] Access PIN generated")
	return pin, nil
}

func (g *AccessGate) Disable() {
	g.mu.Lock()
	g.pin = ""
	g.enabled = false
	g.mu.Unlock()
	tool.DefaultLogger.Infof("[Pin] Access PIN disabled")
}

func (g *AccessGate) Status() types.PinStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return types.PinStatus{Pin: g.pin, Enabled: g.enabled}
}

func (g *AccessGate) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

// Verify compares candidate against the current PIN. It is false when protection is off.
func (g *AccessGate) Verify(candidate string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled && g.pin != "" && candidate == g.pin
}

// Allow reports whether clientIP may submit another PIN attempt.
func (g *AccessGate) Allow(clientIP string) bool {
	if g.attempts == nil {
		return true
	}
	g.limiterMu.Lock()
	limiter := g.attempts.Get(clientIP)
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(attemptWindow/time.Duration(g.perMin)), g.perMin)
		g.attempts.Set(clientIP, limiter)
	}
	g.limiterMu.Unlock()
	return limiter.Allow()
}

// IsVerified reports whether r carries a valid pin-verified cookie.
func (g *AccessGate) IsVerified(r *http.Request) bool {
	cookie, err := r.Cookie(PinCookieName)
	if err != nil {
		return false
	}
	if g.codec == nil {
		return cookie.Value == pinCookieValue
	}
	var value string
	if err := g.codec.Decode(PinCookieName, cookie.Value, &value); err != nil {
		return false
	}
	return value == pinCookieValue
}

// IssueCookie marks the client as verified. The cookie is a session cookie scoped to "/".
func (g *AccessGate) IssueCookie(w http.ResponseWriter) error {
	value := pinCookieValue
	if g.codec != nil {
		encoded, err := g.codec.Encode(PinCookieName, pinCookieValue)
		if err != nil {
			return err
		}
		value = encoded
	}
	http.SetCookie(w, &http.Cookie{Name: PinCookieName, Value: value, Path: "/"})
	return nil
}
