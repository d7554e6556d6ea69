package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims son los claims que emite la API de inventario. El panel no conoce el secreto:
// solo lee el token sin verificar la firma para conocer la expiración.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id,omitempty"`
	Role       string `json:"role,omitempty"`
	LocationID string `json:"location_id,omitempty"`
}

// ExpiresAt devuelve el claim exp del token sin verificar la firma.
// ok es false si el token no trae exp.
func ExpiresAt(tokenString string) (exp time.Time, ok bool, err error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, false, fmt.Errorf("jwt: token mal formado: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}

// Sign firma un token HS256. Lo usan los dobles de prueba del backend.
func Sign(secret string, claims Claims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.Subject == "" {
		claims.Subject = claims.UserID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
