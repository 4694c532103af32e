package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestNewGenerator は各種設定でGeneratorが正しく生成されることを検証します。
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		secret      string
		algorithm   string
		expiration  time.Duration
		expectedAlg string
	}{
		{"standard config", "my-secret-key", "HS256", time.Hour, "HS256"},
		{"hs512", "secret", "HS512", time.Minute, "HS512"},
		{"unknown algorithm falls back to HS256", "secret", "NOPE", time.Hour, "HS256"},
		{"empty algorithm falls back to HS256", "secret", "", time.Hour, "HS256"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator(tt.secret, tt.algorithm, tt.expiration)

			if gen == nil {
				t.Fatal("expected generator to be non-nil")
			}
			if string(gen.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(gen.secret))
			}
			if gen.method.Alg() != tt.expectedAlg {
				t.Errorf("expected algorithm %q, got %q", tt.expectedAlg, gen.method.Alg())
			}
			if gen.expiration != tt.expiration {
				t.Errorf("expected expiration %v, got %v", tt.expiration, gen.expiration)
			}
		})
	}
}

// TestGenerator_GenerateToken は生成されたトークンが有効で正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID uint
		email  string
	}{
		{"basic user", 1, "user@example.com"},
		{"user with special email", 42, "user+tag@example.com"},
		{"large user id", 999999, "test@test.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", "HS256", time.Hour)
			tokenStr, err := gen.GenerateToken(tt.userID, tt.email)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tokenStr == "" {
				t.Fatal("expected non-empty token")
			}

			// Verify the token can be parsed
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				return []byte("test-secret"), nil
			})
			if err != nil {
				t.Fatalf("failed to parse token: %v", err)
			}
			if !token.Valid {
				t.Error("expected token to be valid")
			}

			// Verify claims: subject is the email, uid carries the numeric ID
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				t.Fatal("expected MapClaims")
			}
			if sub, ok := claims["sub"].(string); !ok || sub != tt.email {
				t.Errorf("expected sub %q, got %v", tt.email, claims["sub"])
			}
			if uid, ok := claims["uid"].(float64); !ok || uint(uid) != tt.userID {
				t.Errorf("expected uid %d, got %v", tt.userID, claims["uid"])
			}
			if _, ok := claims["iat"].(float64); !ok {
				t.Error("expected iat claim to be set")
			}
			if _, ok := claims["exp"].(float64); !ok {
				t.Error("expected exp claim to be set")
			}
		})
	}
}

// TestGenerator_VerifyToken_RoundTrip は発行したトークンが検証で同じクレームに戻ることを検証します。
func TestGenerator_VerifyToken_RoundTrip(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("round-trip-secret", "HS256", time.Hour)
	tokenStr, err := gen.GenerateToken(7, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := gen.VerifyToken(tokenStr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", claims.Email)
	}
	if claims.UserID != 7 {
		t.Errorf("expected userID 7, got %d", claims.UserID)
	}
}

// TestGenerator_VerifyToken_Expired は期限切れトークンが拒否されることを検証します。
func TestGenerator_VerifyToken_Expired(t *testing.T) {
	t.Parallel()

	// 負のTTLで即座に期限切れのトークンを発行する
	gen := NewGenerator("expired-secret", "HS256", -time.Minute)
	tokenStr, err := gen.GenerateToken(1, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := gen.VerifyToken(tokenStr); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

// TestGenerator_VerifyToken_WrongSecret は異なるシークレットで署名されたトークンが拒否されることを検証します。
func TestGenerator_VerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewGenerator("secret-a", "HS256", time.Hour)
	verifier := NewGenerator("secret-b", "HS256", time.Hour)

	tokenStr, err := issuer.GenerateToken(1, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.VerifyToken(tokenStr); err == nil {
		t.Fatal("expected token with wrong signature to be rejected")
	}
}

// TestGenerator_VerifyToken_AlgorithmMismatch は設定と異なるアルゴリズムのトークンが拒否されることを検証します。
func TestGenerator_VerifyToken_AlgorithmMismatch(t *testing.T) {
	t.Parallel()

	// 同じシークレットでもHS512署名のトークンはHS256検証器で弾かれる
	issuer := NewGenerator("shared-secret", "HS512", time.Hour)
	verifier := NewGenerator("shared-secret", "HS256", time.Hour)

	tokenStr, err := issuer.GenerateToken(1, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.VerifyToken(tokenStr); err == nil {
		t.Fatal("expected algorithm mismatch to be rejected")
	}
}

// TestGenerator_VerifyToken_Malformed は解析不能な文字列が拒否されることを検証します。
func TestGenerator_VerifyToken_Malformed(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("secret", "HS256", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"garbage", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := gen.VerifyToken(tt.token); err == nil {
				t.Fatal("expected malformed token to be rejected")
			}
		})
	}
}

// TestGenerator_VerifyToken_MissingSubject はsubjectを持たないトークンが拒否されることを検証します。
func TestGenerator_VerifyToken_MissingSubject(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("secret", "HS256", time.Hour)

	// subなしのトークンを手動で作成
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": 1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := gen.VerifyToken(tokenStr); err == nil {
		t.Fatal("expected token without subject to be rejected")
	}
}
