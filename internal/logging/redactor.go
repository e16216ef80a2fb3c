package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	segmentSplitter = regexp.MustCompile(`[^a-z0-9]+`)
	// Push tokens show up inside error messages and notification data, not
	// only under a *_token key.
	pushTokenPattern = regexp.MustCompile(`(Alonix|Exponent)PushToken\[[^\]]*\]`)
)

var sensitiveSegments = map[string]bool{
	"secret":        true,
	"password":      true,
	"token":         true,
	"key":           true,
	"auth":          true,
	"authorization": true,
	"credential":    true,
}

// redactor scrubs log fields before they reach the file.
type redactor struct {
	sensitive map[string]bool
}

func newRedactor() *redactor {
	return &redactor{sensitive: sensitiveSegments}
}

// redact returns a copy of the key-value pairs with sensitive keys masked
// and push tokens removed from every value, including nested payloads.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	for i := 0; i < len(pairs); i += 2 {
		key, isKey := pairs[i].(string)
		result[i] = pairs[i]
		if i+1 == len(pairs) {
			break
		}
		if isKey && r.isSensitive(key) {
			result[i+1] = redacted
			continue
		}
		result[i+1] = r.scrub(pairs[i+1])
	}
	return result
}

func (r *redactor) scrub(v any) any {
	switch val := v.(type) {
	case string:
		return scrubTokens(val)
	case error:
		return scrubTokens(val.Error())
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if r.isSensitive(k) {
				out[k] = redacted
				continue
			}
			out[k] = r.scrub(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = r.scrub(inner)
		}
		return out
	default:
		return v
	}
}

func scrubTokens(s string) string {
	if !strings.Contains(s, "PushToken[") {
		return s
	}
	return pushTokenPattern.ReplaceAllString(s, "${1}PushToken["+redacted+"]")
}

// isSensitive matches whole segments only, so "push_token" is sensitive and
// "tokenizer" is not.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range segmentSplitter.Split(strings.ToLower(key), -1) {
		if r.sensitive[part] {
			return true
		}
	}
	return false
}
