package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt digest of password. bcrypt salts per call, so
// hashing the same password twice yields different digests.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether digest was produced from password. A malformed
// or foreign digest is a verification failure, never an error.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
