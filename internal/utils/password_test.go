package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHashPassword 测试密码哈希与验证
func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestHashPassword_UniqueSalt 测试相同密码产生不同哈希
func TestHashPassword_UniqueSalt(t *testing.T) {
	hash1, err := HashPassword("secret123")
	require.NoError(t, err)
	hash2, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash2)
}

// TestVerifyPassword_InvalidFormat 测试非法哈希格式报错
func TestVerifyPassword_InvalidFormat(t *testing.T) {
	_, err := VerifyPassword("secret", "not-a-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("secret", "$bcrypt$v=19$m=1,t=1,p=1$a$b")
	assert.Error(t, err)
}

// TestGenerateRandomString 测试随机字符串长度与唯一性
func TestGenerateRandomString(t *testing.T) {
	s1, err := GenerateRandomString(32)
	require.NoError(t, err)
	assert.Len(t, s1, 32)

	s2, err := GenerateRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}
