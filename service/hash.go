package service

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// 密码哈希参数。存储层只对哈希字符串做等值比较，
// 因此哈希必须是确定性的：同一明文任何时候都得到同一结果，
// 故使用固定盐的 PBKDF2 而非每次随机加盐的 bcrypt。
// 演示场景下的强度取舍，不追求抗离线破解。
const (
	hashSalt       = "fintrack.v1"
	hashIterations = 10_000
	hashKeyLength  = 32
)

// HashPassword 将明文密码转换为确定性的十六进制哈希字符串
func HashPassword(plain string) string {
	key := pbkdf2.Key([]byte(plain), []byte(hashSalt), hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(key)
}
