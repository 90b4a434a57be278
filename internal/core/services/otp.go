package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPValidity is how long a freshly issued code can be redeemed.
const OTPValidity = 10 * time.Minute

var otpRange = big.NewInt(900000)

// NumericOTPGenerator issues 6-digit codes drawn uniformly from
// [100000, 999999] with a fixed validity window.
type NumericOTPGenerator struct {
	now func() time.Time
}

func NewNumericOTPGenerator() *NumericOTPGenerator {
	return &NumericOTPGenerator{now: time.Now}
}

func (g *NumericOTPGenerator) Generate() (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", time.Time{}, err
	}
	code := fmt.Sprintf("%d", n.Int64()+100000)
	return code, g.now().Add(OTPValidity), nil
}
