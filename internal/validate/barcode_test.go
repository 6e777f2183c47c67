package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarcode(t *testing.T) {

	testCases := []struct {
		raw      string
		expected string
		err      error
	}{
		{"00012345678905001", "00012345678905001", nil},
		{"  00012345678905001\n", "00012345678905001", nil},
		{"", "", ErrEmptyBarcode},
		{" \t ", "", ErrEmptyBarcode},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			result, err := Barcode(tc.raw)

			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestSSCCCheckDigit(t *testing.T) {

	testCases := []struct {
		code   string
		result bool
	}{
		{"106141411234567897", true},
		{"340123450000000000", true},
		{"376104250021234569", true},
		{"000123456789012343", true},
		{"340123450000000001", false},
		{"000123456789012347", false},
		{"00012345678905001", false},
		{"10614141123456789X", false},
		{"1061414112345678a7", false},
		{"0", false},
		{"", false},
		{"letter", false},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			result := SSCCCheckDigit(tc.code)

			assert.Equal(t, tc.result, result)
		})
	}
}
