package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims is the local POS token payload. UpstreamToken is the
// bearer the settlement backend issued at login; the service replays it on
// proxied calls so no server-side session state is needed.
type AccessTokenClaims struct {
	Operator      string `json:"operator"`
	UpstreamToken string `json:"upstream_token,omitempty"`
	jwt.RegisteredClaims
}

// AccessTokenPayload carries the data minted into a local access token.
type AccessTokenPayload struct {
	Operator      string
	UpstreamToken string
	JTI           string
}
