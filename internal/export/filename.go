package export

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

const filenameLayout = "20060102150405"

// Filename returns <sscc>_<YYYYMMDDhhmmss>.xml. Two exports of one SSCC within
// the same second get the same name unless unique is set, in which case a
// random suffix is added.
func Filename(sscc string, at time.Time, unique bool) string {
	name := sanitize(sscc) + "_" + at.Format(filenameLayout)
	if unique {
		name += "_" + randomSuffix()
	}
	return name + ".xml"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}

func randomSuffix() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
