package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/gigledger-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT. Identity
// is resolved by an external collaborator; the token only carries the
// already-authenticated profile reference.
type AccessTokenPayload struct {
	ProfileID   uuid.UUID
	ProfileType enums.ProfileType
	JTI         string
}

// AccessTokenClaims represents the typed JWT presented on every request.
type AccessTokenClaims struct {
	ProfileID   uuid.UUID         `json:"profile_id"`
	ProfileType enums.ProfileType `json:"profile_type"`
	jwt.RegisteredClaims
}
