package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"coachdesk/internal/adapters/email"
	"coachdesk/internal/adapters/http/middleware"
	accountStore "coachdesk/internal/adapters/storage/account"
	eventStore "coachdesk/internal/adapters/storage/event"
	"coachdesk/internal/adapters/storage/kv"
	notificationStore "coachdesk/internal/adapters/storage/notification"
	personStore "coachdesk/internal/adapters/storage/person"
	requestStore "coachdesk/internal/adapters/storage/request"
	sessionStore "coachdesk/internal/adapters/storage/session"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	PersonStore       personStore.Store
	EventStore        eventStore.Store
	NotificationStore notificationStore.Store
	RequestStore      requestStore.Store
	Collections       kv.Repository
}

// loadCSRFKey reads the CSRF secret from COACHDESK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("COACHDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("COACHDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("COACHDESK_ENV") == "production" {
		log.Fatal("COACHDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set COACHDESK_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global registry of live meeting sessions (set by NewMux)
var meetings *sessionStore.Registry

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, registry *sessionStore.Registry) http.Handler {
	stores = s
	meetings = registry
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("COACHDESK_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
