package storage

import (
	"strings"
)

// SanitizeFilename reduces an untrusted upload filename to a single
// safe path component:
//   - directory parts are stripped (both separator styles)
//   - NUL and control characters are dropped
//   - anything outside [A-Za-z0-9._-] maps to '_', runs collapsed
//   - empty or dots-only results are rejected
func SanitizeFilename(name string) (string, error) {
	// Keep only the last path component, whichever separator the
	// client used.
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r == 0 || r < 0x20 || r == 0x7f:
			// drop control characters
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	cleaned := strings.Trim(b.String(), "_")
	if cleaned == "" || strings.Trim(cleaned, ".") == "" {
		return "", ErrUnsafeFilename
	}

	return cleaned, nil
}
