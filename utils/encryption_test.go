package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef" // 32 bytes

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	ciphertext, err := Encrypt(testKey, "sk-smartlead-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "sk-smartlead-secret", ciphertext)

	plaintext, err := Decrypt(testKey, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "sk-smartlead-secret", plaintext)
}

func TestEncryptDecrypt_EmptyPassesThrough(t *testing.T) {
	ciphertext, err := Encrypt(testKey, "")
	require.NoError(t, err)
	assert.Equal(t, "", ciphertext)

	plaintext, err := Decrypt(testKey, "")
	require.NoError(t, err)
	assert.Equal(t, "", plaintext)
}

func TestEncrypt_BadKeyLength(t *testing.T) {
	_, err := Encrypt("short", "secret")
	assert.Error(t, err)
}

func TestDecrypt_TruncatedCiphertext(t *testing.T) {
	_, err := Decrypt(testKey, "YWJj")
	assert.Error(t, err)
}
