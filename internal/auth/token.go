package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// subjectID es la única identidad reconocida por el emisor.
const subjectID = "admin"

// TokenResponse es el cuerpo devuelto por POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

// TokenIssuer firma y verifica tokens HS256 para la identidad fija.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// IssueToken emite un token para la identidad fija. No recibe
// credenciales: es un emisor de identidad única, no un login.
func (ti *TokenIssuer) IssueToken() (*TokenResponse, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      subjectID,
		"username": subjectID,
		"iat":      now.Unix(),
		"exp":      now.Add(ti.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		ExpiresIn:   int64(ti.ttl.Seconds()),
	}, nil
}

// ValidateSubject reconoce únicamente la identidad emitida.
func (ti *TokenIssuer) ValidateSubject(sub string) bool {
	return sub == subjectID
}

// ParseSubject verifica firma y expiración, y devuelve el subject.
func (ti *TokenIssuer) ParseSubject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token without subject")
	}

	return sub, nil
}
