package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionCookieName = "DELAVNICE_SESSION"

type sessionKey struct{}

// SessionData is persisted in a signed cookie.
type SessionData struct {
	ID        string    `json:"id"`
	Locale    string    `json:"locale,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	Flash     string    `json:"flash,omitempty"`
	ResetSent string    `json:"reset,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool
}

// Sessions signs and verifies session cookies.
type Sessions struct {
	key    []byte
	secure bool
}

// NewSessions builds the cookie codec. With an empty key a process-ephemeral
// key is generated, which only suits local development.
func NewSessions(signingKey string, secure bool, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(strings.TrimSpace(signingKey))
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			logger.Error("session: generate signing key", zap.Error(err))
			key = []byte("insecure-dev-key-set-DELAVNICE_WEB_SESSION_SIGNING_KEY")
		}
		logger.Warn("session: using ephemeral signing key; set DELAVNICE_WEB_SESSION_SIGNING_KEY outside development")
	}
	return &Sessions{key: key, secure: secure}
}

// Secure reports whether cookies carry the Secure attribute.
func (s *Sessions) Secure() bool { return s.secure }

// Middleware loads or initializes a session and stores it in request context.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := s.read(r)
		if sd.ID == "" {
			sd.ID = uuid.NewString()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, sd)
		rw := NewResponseRecorder(w)
		// the cookie must be set before the first header write
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				s.write(w, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// nothing written yet (e.g. HEAD or an empty 200)
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			s.write(w, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(sessionKey{}); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (sd *SessionData) MarkDirty() { sd.dirty = true; sd.UpdatedAt = time.Now().UTC() }

// SetFlash stores a one-shot message for the next page view.
func (sd *SessionData) SetFlash(msg string) {
	sd.Flash = msg
	sd.MarkDirty()
}

// TakeFlash returns and clears the pending flash message.
func (sd *SessionData) TakeFlash() string {
	msg := sd.Flash
	if msg != "" {
		sd.Flash = ""
		sd.MarkDirty()
	}
	return msg
}

func (s *Sessions) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	return mac.Sum(nil)
}

// read parses and verifies the session cookie
func (s *Sessions) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	payloadPart, sigPart, ok := strings.Cut(c.Value, ".")
	if !ok {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return &SessionData{}, false
	}
	if !hmac.Equal(sigB, s.sign(payloadB)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func (s *Sessions) write(w http.ResponseWriter, sd *SessionData) {
	b, _ := json.Marshal(sd)
	val := base64.RawURLEncoding.EncodeToString(b) + "." + base64.RawURLEncoding.EncodeToString(s.sign(b))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}
