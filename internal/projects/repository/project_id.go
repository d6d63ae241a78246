package repository

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewProjectID generates a short public project identifier such as
// proj-48213-7751. Collisions are handled by the caller's insert retry.
func NewProjectID() (string, error) {
	a, err := randInt(10000, 99999)
	if err != nil {
		return "", err
	}
	b, err := randInt(1000, 9999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("proj-%05d-%04d", a, b), nil
}

func randInt(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
