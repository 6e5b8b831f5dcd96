package utils // package utils provides helper functions for token creation and hashing

import (
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

    "github.com/himanshu1091/store-rating-api/internal/model" // role enumeration embedded in the token
)

// SessionToken represents a signed JWT session credential along with its
// expiry.  The Token field contains the serialized JWT string.  Exp stores
// the expiration timestamp as a time.Time.  Session tokens are stateless:
// nothing is persisted server-side, so a token remains the only proof of
// identity until it expires.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's role, and a TTL in hours.  It
// returns a SessionToken structure containing the signed token and its
// expiration time.  The JWT carries standard claims: subject (sub), role,
// expiration (exp) and issued at (iat).
func NewSessionToken(secret string, userID uint64, role model.Role, ttlHours int) (SessionToken, error) {
    // Calculate the expiration time by adding the TTL to the current UTC time.
    exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
    // Construct the JWT claims.  Using MapClaims allows arbitrary key/value
    // pairs.  We set sub to the user ID, role to the user's role, exp to
    // the expiration Unix timestamp, and iat to the issued at time.
    claims := jwt.MapClaims{
        "sub":  userID,
        "role": role.String(),
        "exp":  exp.Unix(),
        "iat":  time.Now().UTC().Unix(),
    }
    // Create a new token object specifying the signing method (HS256) and
    // include the claims.
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    // Sign the token with the provided secret and obtain the string form.  If
    // signing fails, return the error and a zero SessionToken.
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}
