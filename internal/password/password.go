// Package password wraps credential hashing so handlers never touch
// the bcrypt API directly.
package password

import "golang.org/x/crypto/bcrypt"

// Hash derives a storable hash from a plaintext credential.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain matches the stored hash.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
