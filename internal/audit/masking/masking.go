package masking

import "strings"

const maskToken = "****"

// Keys whose values must never land in an audit row in the clear. PINs are
// shared cohort secrets and passport/bank identifiers are personal data.
var sensitiveKeys = map[string]struct{}{
	"pin":             {},
	"pincode":         {},
	"password":        {},
	"passport_id":     {},
	"passportno":      {},
	"bank_account_no": {},
	"bank_account":    {},
	"resident_id":     {},
}

// MaskSecret redacts a secret while keeping a minimal suffix for auditing.
func MaskSecret(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= 4 {
		return maskToken
	}
	return maskToken + trimmed[len(trimmed)-4:]
}

// MaskMetadata returns a copy of the input with sensitive values redacted.
func MaskMetadata(input map[string]any) map[string]any {
	if len(input) == 0 {
		return nil
	}

	masked := make(map[string]any, len(input))
	for key, value := range input {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			continue
		}
		masked[trimmedKey] = maskValue(trimmedKey, value)
	}

	if len(masked) == 0 {
		return nil
	}
	return masked
}

func maskValue(key string, value any) any {
	switch cast := value.(type) {
	case string:
		if _, sensitive := sensitiveKeys[strings.ToLower(key)]; sensitive {
			return MaskSecret(cast)
		}
		return cast
	case map[string]any:
		return MaskMetadata(cast)
	case []any:
		out := make([]any, 0, len(cast))
		for _, item := range cast {
			out = append(out, maskValue(key, item))
		}
		return out
	default:
		return value
	}
}
