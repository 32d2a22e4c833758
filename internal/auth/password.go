// Package auth implements password hashing and token issuance/verification.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordGuard hashes and verifies passwords with bcrypt. The work factor
// is tunable through configuration so deployments can raise it without a
// code change.
type PasswordGuard struct {
	cost int
}

// NewPasswordGuard returns a guard with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewPasswordGuard(cost int) *PasswordGuard {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordGuard{cost: cost}
}

// Hash returns the bcrypt hash of the given plaintext password.
func (g *PasswordGuard) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), g.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash.
func (g *PasswordGuard) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
