// Package eventcode builds and checks the public codes events are shared by.
package eventcode

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	maxBaseLength = 20
	suffixLength  = 6
	fallbackBase  = "EVENT"
)

var (
	disallowed = regexp2.MustCompile(`[^A-Z0-9\s]`, regexp2.None)
	whitespace = regexp2.MustCompile(`\s+`, regexp2.None)

	// Codes are routed as a single path segment.
	valid = regexp2.MustCompile(`^(?=.{1,64}$)[^\s/?#%]+$`, regexp2.None)
)

// Base returns the title reduced to uppercase letters and digits, capped at
// 20 characters, or EVENT when nothing is left.
func Base(title string) string {
	code := strings.ToUpper(title)

	code, err := disallowed.Replace(code, "", -1, -1)
	if err != nil {
		return fallbackBase
	}
	code, err = whitespace.Replace(code, "", -1, -1)
	if err != nil {
		return fallbackBase
	}

	if len(code) > maxBaseLength {
		code = code[:maxBaseLength]
	}
	if code == "" {
		code = fallbackBase
	}

	return code
}

// Generate returns Base(title) followed by the last six digits of now in
// unix milliseconds.
func Generate(title string, now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ts) > suffixLength {
		ts = ts[len(ts)-suffixLength:]
	}

	return Base(title) + ts
}

// Valid reports whether code can be used as an event code: 1 to 64
// characters with no whitespace, '/', '?', '#' or '%'. Every code Generate
// returns is valid.
func Valid(code string) bool {
	ok, err := valid.MatchString(code)
	return err == nil && ok
}
