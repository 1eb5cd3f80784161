package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// PasswordServiceImpl hashes credentials with bcrypt at the default cost
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates the bcrypt password service
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{cost: bcrypt.DefaultCost}
}

// NewPasswordServiceWithCost allows a lower cost factor where hashing
// latency matters more than work factor, e.g. test fixtures.
func NewPasswordServiceWithCost(cost int) domain.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
