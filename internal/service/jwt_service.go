package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService emite y valida los session tokens de la API.
type JWTService struct {
	secret []byte
	issuer string
}

// Claims transporta la identidad y el rol del usuario autenticado. Los
// nombres de los claims (`id`, `isAdmin`) son los que el frontend ya
// conoce del esquema anterior.
type Claims struct {
	UserID  string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

var ErrJWTInvalid = errors.New("jwt invalid")

func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		issuer: "mern-blog-backend",
	}
}

// Issue firma un token HS256 con los claims {id, isAdmin}. El token no
// lleva claim de expiracion: su vida util la limita el max-age de la
// cookie de sesion.
func (s *JWTService) Issue(userID string, isAdmin bool) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrJWTInvalid
	}
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma y estructura del token y devuelve los claims. No
// consulta el store: los claims se confian tal como fueron emitidos.
func (s *JWTService) Parse(tokenString string) (Claims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrJWTInvalid
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if _, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return Claims{}, ErrJWTInvalid
	}
	if !s.isValidClaims(claims) {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.UserID) == "" {
		return false
	}
	if claims.Subject != claims.UserID {
		return false
	}
	return claims.Issuer == s.issuer
}
