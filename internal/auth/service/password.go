package service

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt hash. The salt and cost parameters
// are embedded in the output, so verification needs nothing but the hash.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches storedHash. A malformed
// storedHash reads as a failed match rather than an error; bcrypt compares
// digests in constant time.
func VerifyPassword(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
