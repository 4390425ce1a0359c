package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the payload of the access tokens issued by the auth service.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}

// Principal is the verified caller attached to a request.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

// CanModify reports whether the principal may change a resource owned by ownerID.
func (p Principal) CanModify(ownerID uuid.UUID) bool {
	return p.IsAdmin() || p.UserID == ownerID
}
