package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the salt work factor the account data was created with.
const bcryptCost = 12

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	return string(b), err
}

// VerifyPassword reports whether pw matches the stored bcrypt hash.
// Any verification failure, including a malformed hash, counts as a
// mismatch rather than an error.
func VerifyPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
