package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher bcrypt 密码哈希器
// cost 为进程级配置（auth.bcrypt_cost），构造时注入，不随成员存储
type Hasher struct {
	cost int
}

// NewHasher 创建 Hasher，cost 超出 bcrypt 合法范围时回退到 DefaultCost
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash 生成加盐哈希；同一明文每次输出不同
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify 校验明文与存储哈希是否匹配
// cost 编码在 digest 内，验证不依赖当前配置
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
