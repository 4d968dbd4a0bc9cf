package infrastructure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestFieldCipherRoundTrip(t *testing.T) {
	cipher, err := NewFieldCipher(testKey)
	require.NoError(t, err)

	enc, err := cipher.Encrypt("Ana García, Calle Mayor 12")
	require.NoError(t, err)
	assert.NotEqual(t, "Ana García, Calle Mayor 12", enc)

	plain, err := cipher.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "Ana García, Calle Mayor 12", plain)
}

func TestFieldCipherEmptyPassthrough(t *testing.T) {
	cipher, err := NewFieldCipher(testKey)
	require.NoError(t, err)

	enc, err := cipher.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", enc)

	plain, err := cipher.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", plain)
}

func TestFieldCipherNonDeterministic(t *testing.T) {
	cipher, err := NewFieldCipher(testKey)
	require.NoError(t, err)

	first, err := cipher.Encrypt("600123456")
	require.NoError(t, err)
	second, err := cipher.Encrypt("600123456")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "random nonce must vary the ciphertext")
}

func TestFieldCipherRejectsBadKey(t *testing.T) {
	_, err := NewFieldCipher("not-hex")
	assert.Error(t, err)

	_, err = NewFieldCipher(strings.Repeat("ab", 16))
	assert.Error(t, err, "16-byte key is too short for AES-256")
}

func TestFieldCipherRejectsTamperedCiphertext(t *testing.T) {
	cipher, err := NewFieldCipher(testKey)
	require.NoError(t, err)

	_, err = cipher.Decrypt("AAAA")
	assert.Error(t, err)
}
