package env

import (
	"strings"

	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/rotisserie/eris"
)

// SplitWords splits s into words using POSIX shell quoting only:
// blanks separate words, single quotes keep everything literal, double
// quotes honour \" and \\, and a backslash outside quotes escapes the
// next character. Nothing is expanded or interpreted, so $ORIGIN, ~,
// CMake list separators (;) and characters such as # & | < > are kept
// as they are. A quoted empty string is an empty word.
func SplitWords(s string) ([]string, error) {
	var (
		words  []string
		word   strings.Builder
		inWord bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			if inWord {
				words = append(words, word.String())
				word.Reset()
				inWord = false
			}
			continue
		case '\\':
			if i++; i == len(s) {
				return nil, splitError(s, "no escaped character")
			}
			word.WriteByte(s[i])
		case '\'':
			j := strings.IndexByte(s[i+1:], '\'')
			if j < 0 {
				return nil, splitError(s, "no closing quotation")
			}
			word.WriteString(s[i+1 : i+1+j])
			i += j + 1
		case '"':
			for i++; ; i++ {
				if i == len(s) {
					return nil, splitError(s, "no closing quotation")
				}
				c = s[i]
				if c == '"' {
					break
				}
				if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
					i++
					c = s[i]
				}
				word.WriteByte(c)
			}
		default:
			word.WriteByte(c)
		}
		inWord = true
	}
	if inWord {
		words = append(words, word.String())
	}
	return words, nil
}

func splitError(s, reason string) error {
	return eris.Wrapf(buildsys.ErrConfiguration, "cannot split %q: %s", s, reason)
}

// ExtraArgs tokenizes CMAKE_ARGS without touching the environment.
func ExtraArgs(e Environ) ([]string, error) {
	v, ok := e.Lookup(ExtraArgsVar)
	if !ok {
		return nil, nil
	}
	return SplitWords(v)
}

// ConsumeExtraArgs tokenizes CMAKE_ARGS and unsets it, so processes
// spawned afterwards do not apply the same arguments a second time.
// The variable is removed even when it fails to parse.
func ConsumeExtraArgs(e Environ) ([]string, error) {
	v, ok := e.Lookup(ExtraArgsVar)
	if !ok {
		return nil, nil
	}
	if err := e.Unset(ExtraArgsVar); err != nil {
		return nil, eris.Wrapf(buildsys.ErrConfiguration, "unset %s: %v", ExtraArgsVar, err)
	}
	return SplitWords(v)
}
