package config

import (
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("LECTURE_AUTH_JWT_SECRET", "")

	if _, err := Load(""); err == nil {
		t.Fatal("缺少 jwt_secret 时加载应失败")
	}
}

func TestLoadDefaultsFromEnv(t *testing.T) {
	t.Setenv("LECTURE_AUTH_JWT_SECRET", "env-provided-secret!")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("期望默认端口 8080，实际=%d", cfg.Server.Port)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Errorf("期望默认 access_token_ttl=15m，实际=%v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("期望默认 bcrypt_cost=10，实际=%d", cfg.Auth.BcryptCost)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("数据库默认值不正确: %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
}

func TestValidateRejectsShortSecret(t *testing.T) {
	t.Setenv("LECTURE_AUTH_JWT_SECRET", "short")

	if _, err := Load(""); err == nil {
		t.Fatal("过短的 jwt_secret 应被拒绝")
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, Name: "lecture_hub",
		User: "postgres", Password: "pw", SSLMode: "disable", Timezone: "Asia/Seoul",
	}
	want := "host=db port=5432 user=postgres password=pw dbname=lecture_hub sslmode=disable TimeZone=Asia/Seoul"
	if got := c.DSN(); got != want {
		t.Errorf("DSN 拼装不正确:\n期望=%s\n实际=%s", want, got)
	}
}
