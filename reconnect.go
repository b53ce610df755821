package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const reconnectionTime = time.Minute * 2

// ReconnectJWT issues short-lived tokens that let a dropped client skip the
// nickname handshake and return to its room, as long as the nickname is
// still free. This is not authentication; uniqueness stays the only gate.
type ReconnectJWT struct {
	jwtSecret string
}

func NewReconnectJWT(jwtSecret string) *ReconnectJWT {
	return &ReconnectJWT{jwtSecret}
}

func (r ReconnectJWT) GenerateReconnectionJWT(nickname string, room int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"nickname": nickname, "room": room, "exp": jwt.NewNumericDate(time.Now().Add(reconnectionTime))})
	return token.SignedString([]byte(r.jwtSecret))
}

func (r ReconnectJWT) ParseReconnectionJWT(tokenString string) (nickname string, room int, ok bool) {
	token, _ := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(r.jwtSecret), nil
	})
	if token == nil {
		return "", 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", 0, false
	}
	nickname, _ = claims["nickname"].(string)
	roomClaim, _ := claims["room"].(float64)
	if nickname == "" {
		return "", 0, false
	}
	return nickname, int(roomClaim), true
}
