package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generator produces one-time login codes. The implementation is selected
// once at process start and injected into the auth service; request-path
// code never branches on the environment.
type Generator interface {
	Generate() (string, error)
}

// RandomGenerator returns a uniformly random 6-digit code.
type RandomGenerator struct{}

func (RandomGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// FixedGenerator always returns the same code. It exists so development and
// test environments can log in without an SMS round trip. A production
// configuration must never select it.
type FixedGenerator string

func (g FixedGenerator) Generate() (string, error) {
	return string(g), nil
}
