package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/clinicore/clinic-management-api/internal/constants"
)

// GenerateInviteCode draws an 8-character code from the unambiguous invite
// alphabet. Codes are short-lived shared secrets, not credentials; uniqueness
// across organizations is probabilistic, not enforced.
func GenerateInviteCode() (string, error) {
	alphabet := constants.InviteCodeAlphabet
	max := big.NewInt(int64(len(alphabet)))

	code := make([]byte, constants.InviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		code[i] = alphabet[n.Int64()]
	}

	return string(code), nil
}
