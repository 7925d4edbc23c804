package utils // package utils provides helper functions for hashing and session tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"       // random jti generation
)

// SessionToken is a signed HS256 JWT carried in the session cookie. The
// token binds the logged-in user (sub, email, name) to a random session id
// (jti). The jti doubles as the key of the checkout-session store, so two
// logins by the same user never share checkout state.
type SessionToken struct {
	Token string    // the serialized JWT string
	SID   string    // the jti claim, used as checkout store key
	Exp   time.Time // the UTC expiration time
}

// Claims extracted from a valid session cookie.
type SessionClaims struct {
	UserID uint64
	Email  string
	Name   string
	SID    string
}

var errInvalidSession = errors.New("invalid session token")

// NewSessionToken builds and signs the cookie JWT for a user. ttlMin is the
// login session lifetime in minutes.
func NewSessionToken(secret string, userID uint64, email, name string, ttlMin int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	sid := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"name":  name,
		"jti":   sid,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, SID: sid, Exp: exp}, nil
}

// ParseSessionToken validates the cookie JWT and extracts its claims. Any
// failure (bad signature, wrong algorithm, expiry, malformed claims) yields
// a generic error; callers redirect to the login page rather than exposing
// the reason.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, errInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, errInvalidSession
	}

	out := SessionClaims{}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return SessionClaims{}, errInvalidSession
	}
	out.UserID = uint64(sub)
	if out.SID, ok = claims["jti"].(string); !ok || out.SID == "" {
		return SessionClaims{}, errInvalidSession
	}
	out.Email, _ = claims["email"].(string)
	out.Name, _ = claims["name"].(string)
	return out, nil
}
