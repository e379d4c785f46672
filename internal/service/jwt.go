package service

import (
	"errors"
	"os"
	"time"

	"github.com/imran12mia/hopweb/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// Identity is the verified content of a token: the ledger trusts this
// and performs no further authentication.
type Identity struct {
	UserID int64
	Phone  string
	Role   domain.Role
}

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// SetJWTSecret overrides the signing secret. Test hook only.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateJWT(u *domain.User) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"phone":   u.Phone,
		"role":    string(u.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     now,
		"nbf":     now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseJWT(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < now {
		return nil, errors.New("token expired")
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return nil, errors.New("token not valid yet")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("user_id not found")
	}
	phone, _ := claims["phone"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = string(domain.RoleUser)
	}

	return &Identity{
		UserID: int64(userID),
		Phone:  phone,
		Role:   domain.Role(role),
	}, nil
}
