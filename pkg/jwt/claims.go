package jwt

import "github.com/golang-jwt/jwt/v5"

// TripClaims scope a token to one trip: a player can read every trip they are
// on, enter scores for themselves, and organize only the trips they run.
type TripClaims struct {
	jwt.RegisteredClaims
	Trip string `json:"trip"`
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer    Role = "viewer"
	RolePlayer    Role = "player"
	RoleOrganizer Role = "organizer"
)
