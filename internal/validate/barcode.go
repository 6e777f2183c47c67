package validate

import (
	"errors"
	"strings"
)

var (
	ErrEmptyBarcode      = errors.New("barcode is required")
	ErrInvalidCheckDigit = errors.New("invalid SSCC check digit")
)

// Barcode trims the scanned value and rejects empty input.
func Barcode(raw string) (string, error) {
	barcode := strings.TrimSpace(raw)
	if barcode == "" {
		return "", ErrEmptyBarcode
	}
	return barcode, nil
}

// SSCCCheckDigit checks the GS1 mod 10 check digit of a numeric code.
// Digits are weighted 3,1,3,... starting from the rightmost data digit.
func SSCCCheckDigit(code string) bool {
	if len(code) < 2 {
		return false
	}

	sum := 0
	weight := 3
	for i := len(code) - 2; i >= 0; i-- {
		c := code[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}

	last := code[len(code)-1]
	if last < '0' || last > '9' {
		return false
	}
	return (10-sum%10)%10 == int(last-'0')
}
