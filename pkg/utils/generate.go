package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== OTP ====================

// GenerateOTP returns a numeric code of the given length drawn uniformly
// from [10^(n-1), 10^n). Codes are credentials, so crypto/rand.
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	low := big.NewInt(1)
	for i := 1; i < length; i++ {
		low.Mul(low, big.NewInt(10))
	}
	span := new(big.Int).Mul(low, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		// rand.Reader failing means the platform RNG is broken
		panic(err)
	}

	return strconv.FormatInt(new(big.Int).Add(low, n).Int64(), 10)
}
