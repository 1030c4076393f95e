package model

// SessionClaims are the JWT claims minted by the upstream identity layer.
// Sub is the stable upstream account identifier (e.g. the OAuth provider's
// account id), which the API derives the local customer id from.
type SessionClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
	Iat   int64  `json:"iat"`
	Iss   string `json:"iss"`
}
