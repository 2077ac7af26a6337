package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"mistogo/config"
)

// HashPassword computes the HMAC-SHA256 hex digest used by the user store.
// The key comes from PASSWORD_HMAC_KEY; existing user rows already carry
// digests in this scheme, so the algorithm cannot change without a migration.
func HashPassword(password string) string {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.PasswordHMACKey))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPassword checks a plaintext password against a stored digest.
func VerifyPassword(password, digest string) bool {
	expected := HashPassword(password)
	return hmac.Equal([]byte(expected), []byte(digest))
}
