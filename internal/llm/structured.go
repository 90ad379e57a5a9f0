package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded response beyond what JSON decoding
// enforces. Returns nil if the value is acceptable.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls the first JSON object out of model output and decodes it
// into T. Prose and markdown fences around the object are skipped and
// comments inside it are dropped. The object ends at its own balancing brace,
// so trailing chatter is ignored even when it contains braces. A non-nil
// validate must accept the decoded value.
func ExtractJSON[T any](raw string, validate SchemaValidator[T]) (T, error) {
	var zero T

	obj, ok := firstObject(raw)
	if !ok {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var out T
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(out); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// firstObject copies the first balanced {...} span of s, leaving out // and
// /* */ comments found outside string literals. Unterminated spans report
// false.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(s) - start)

	depth := 0
	inString, escaped := false, false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '/':
			if i+1 < len(s) && s[i+1] == '/' {
				nl := strings.IndexByte(s[i:], '\n')
				if nl < 0 {
					return "", false
				}
				i += nl - 1 // resume on the newline
				continue
			}
			if i+1 < len(s) && s[i+1] == '*' {
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					return "", false
				}
				i += end + 3 // the closing '/'
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				b.WriteByte(c)
				return b.String(), true
			}
		}
		b.WriteByte(c)
	}
	return "", false
}
