package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the verified contents of an access token.
type Claims struct {
	// Email is the token subject.
	Email string
	// UserID is the auxiliary "uid" claim.
	UserID uint
}

// Generator defines the interface for access token generation.
type Generator interface {
	// GenerateToken creates a signed token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// Verifier defines the interface for access token verification.
type Verifier interface {
	// VerifyToken validates the signature, algorithm and expiry of a token
	// and returns its claims.
	VerifyToken(tokenStr string) (*Claims, error)
}

// generator implements both Generator and Verifier with a shared
// HMAC secret and signing method.
type generator struct {
	secret     []byte
	method     jwt.SigningMethod
	expiration time.Duration
}

// NewGenerator creates a JWT generator/verifier for the given secret, algorithm
// name (e.g. "HS256") and token lifetime. An unknown algorithm falls back to HS256.
func NewGenerator(secret, algorithm string, expiration time.Duration) *generator {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &generator{
		secret:     []byte(secret),
		method:     method,
		expiration: expiration,
	}
}

// GenerateToken creates a signed token whose subject is the user's email,
// with an auxiliary "uid" claim carrying the user ID.
func (g *generator) GenerateToken(userID uint, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"uid": userID,
		"iat": now.Unix(),
		"exp": now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(g.method, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and validates a token string.
// It rejects tokens signed with a different algorithm, tokens with an invalid
// signature, expired tokens, and tokens without a string subject.
func (g *generator) VerifyToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// 設定されたアルゴリズム以外は拒否（alg混同攻撃の防止）
		if t.Method.Alg() != g.method.Alg() {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("missing subject claim")
	}

	claims := &Claims{Email: sub}
	// JWTの数値はfloat64としてデコードされる
	if uid, ok := mapClaims["uid"].(float64); ok {
		claims.UserID = uint(uid)
	}
	return claims, nil
}
