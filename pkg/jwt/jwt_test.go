package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/2023-Capston-Design/Backend-RE/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "jwt-unit-test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: time.Hour,
	})
}

func TestGenerateAndParse(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateAccessToken(42, "student")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.MemberID != 42 {
		t.Errorf("期望 member_id=42，实际=%d", claims.MemberID)
	}
	if claims.Role != "student" {
		t.Errorf("期望 role=student，实际=%s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 token_type=access，实际=%s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("期望令牌携带 jti")
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateRefreshToken(42, "manager")
	if err != nil {
		t.Fatalf("生成 Refresh Token 失败: %v", err)
	}
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("期望 token_type=refresh，实际=%s", claims.TokenType)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.GenerateAccessToken(42, "student")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际=%v", err)
	}
}

func TestParseTokenWithWrongSecret(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:       "a-different-secret!!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})

	token, err := m.GenerateAccessToken(42, "student")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际=%v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	if _, err := m.ParseToken("not.a.jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际=%v", err)
	}
}
