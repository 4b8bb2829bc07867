package types

import "github.com/google/uuid"

// TokenClaims is the identity extracted from a verified bearer token.
type TokenClaims struct {
	UserID uuid.UUID
}
