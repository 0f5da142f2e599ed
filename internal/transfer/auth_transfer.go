package transfer

import "github.com/golang-jwt/jwt/v5"

// StateClaims is the signed payload of an OAuth state token: issue time and
// expiry live in the registered claims, RedirectTo is the optional frontend
// path to return the user to after linking.
type StateClaims struct {
	RedirectTo string `json:"redirect_to,omitempty"`
	jwt.RegisteredClaims
}
