package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	TokenLifetime time.Duration
}

type PlayerClaims struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func loadSecret() ([]byte, error) {
	secret, ok := os.LookupEnv("JWT_SECRET")
	if ok {
		return []byte(secret), nil
	}
	secretFile, ok := os.LookupEnv("JWT_SECRET_FILE")
	if !ok {
		return nil, fmt.Errorf("no JWT_SECRET or JWT_SECRET_FILE env variable set")
	}
	data, err := os.ReadFile(secretFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT secret file: %w", err)
	}
	return []byte(strings.TrimSpace(string(data))), nil
}

func NewJWT() (*JWT, error) {
	secret, err := loadSecret()
	if err != nil {
		return nil, err
	}
	j := &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		TokenLifetime: time.Hour * 24 * 30,
	}
	return j, nil
}

func (j *JWT) NewPlayerClaims(playerId int64, username string) *PlayerClaims {
	return &PlayerClaims{
		PlayerId: playerId,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
}

func (j *JWT) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

func (j *JWT) ParsePlayerClaims(tokenString string) (*PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&PlayerClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*PlayerClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
