package infrastructure

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
)

// FieldCipher chiffre les champs personnels (nom, adresse, téléphone)
// avant leur écriture en base. AES-256-GCM, nonce aléatoire préfixé,
// sortie encodée en base64.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher crée un FieldCipher depuis une clé hex de 64 caractères
func NewFieldCipher(hexKey string) (*FieldCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, errors.Wrap(err, "invalid cipher key encoding")
	}
	if len(key) != 32 {
		return nil, errors.Errorf("cipher key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "create cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "create GCM")
	}
	return &FieldCipher{aead: aead}, nil
}

// Encrypt chiffre une valeur. La chaîne vide est retournée telle quelle.
func (c *FieldCipher) Encrypt(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "generate nonce")
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt déchiffre une valeur produite par Encrypt
func (c *FieldCipher) Decrypt(enc string) (string, error) {
	if enc == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", errors.Wrap(err, "decode ciphertext")
	}
	if len(raw) < c.aead.NonceSize() {
		return "", errors.New("ciphertext too short")
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.Wrap(err, "decrypt field")
	}
	return string(plain), nil
}
