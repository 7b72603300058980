package request

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"helpdispatch/internal/pkg/errs"
)

const (
	minCode = 100000
	maxCode = 999999
)

// VerificationCodes are the one-time codes the requester reads out to the helper
// when the job starts and when it ends.
type VerificationCodes struct {
	Start string
	End   string
}

// NewVerificationCodes draws two distinct codes in [100000, 999999].
func NewVerificationCodes() (VerificationCodes, error) {
	start, err := randomCode()
	if err != nil {
		return VerificationCodes{}, err
	}

	for {
		end, err := randomCode()
		if err != nil {
			return VerificationCodes{}, err
		}
		if end != start {
			return VerificationCodes{Start: start, End: end}, nil
		}
	}
}

// Validate checks both codes are 6-digit values in range and differ.
func (c VerificationCodes) Validate() error {
	if err := errors.Join(validateCode("start code", c.Start), validateCode("end code", c.End)); err != nil {
		return err
	}
	if c.Start == c.End {
		return errs.NewValueIsInvalidErrorWithCause("verification codes", errors.New("start and end codes must differ"))
	}
	return nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+minCode, 10), nil
}

func validateCode(name, code string) error {
	n, err := strconv.Atoi(code)
	if err != nil || len(code) != 6 {
		return errs.NewValueIsInvalidError(name)
	}
	if n < minCode || n > maxCode {
		return errs.NewValueIsOutOfRangeError(name, n, minCode, maxCode)
	}
	return nil
}
