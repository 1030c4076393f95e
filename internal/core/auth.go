package core

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/edvin/alloy/internal/model"
)

// customerIDPrefix namespaces every derived customer id on the provider side.
const customerIDPrefix = "alloy_"

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// CustomerIDForSubject derives the provider-side customer id from the stable
// upstream account identifier. Pure and deterministic: the same subject always
// yields the same id, which is the join key between session state and
// provider-side customer records.
func CustomerIDForSubject(subject string) string {
	safe := unsafeIDChars.ReplaceAllString(strings.TrimSpace(subject), "_")
	return customerIDPrefix + safe
}

// AuthService validates the HS256 session tokens minted by the upstream
// identity layer with the shared secret.
type AuthService struct {
	jwtSecret []byte
	jwtIssuer string
}

func NewAuthService(jwtSecret, jwtIssuer string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		jwtIssuer: jwtIssuer,
	}
}

// IssueToken creates a signed session token for the given upstream subject.
// Production tokens come from the identity layer; this exists for dev mode
// and tests.
func (s *AuthService) IssueToken(subject, email string) (string, error) {
	now := time.Now()
	claims := model.SessionClaims{
		Sub:   subject,
		Email: email,
		Iat:   now.Unix(),
		Exp:   now.Add(24 * time.Hour).Unix(),
		Iss:   s.jwtIssuer,
	}
	return s.signJWT(claims)
}

// ValidateToken parses and validates a session token, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*model.SessionClaims, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid token format")
	}

	// Verify signature
	signingInput := parts[0] + "." + parts[1]
	expectedSig := s.hmacSign([]byte(signingInput))
	actualSig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid signature encoding")
	}
	if subtle.ConstantTimeCompare(expectedSig, actualSig) != 1 {
		return nil, fmt.Errorf("invalid signature")
	}

	// Decode payload
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid payload encoding")
	}

	var claims model.SessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("invalid claims: %w", err)
	}

	if time.Now().Unix() > claims.Exp {
		return nil, fmt.Errorf("token expired")
	}
	if claims.Sub == "" {
		return nil, fmt.Errorf("missing subject")
	}

	return &claims, nil
}

func (s *AuthService) signJWT(claims model.SessionClaims) (string, error) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(claimsJSON)

	signingInput := header + "." + payload
	sig := base64.RawURLEncoding.EncodeToString(s.hmacSign([]byte(signingInput)))

	return signingInput + "." + sig, nil
}

func (s *AuthService) hmacSign(data []byte) []byte {
	mac := hmac.New(sha256.New, s.jwtSecret)
	mac.Write(data)
	return mac.Sum(nil)
}
