package assets

import (
	"strings"

	"github.com/Faultbox/wallmesh/internal/settings"
)

// AssetName derives a file base name from a user label. Characters outside
// [A-Za-z0-9._-] become underscores, runs of underscores collapse, and
// leading or trailing dots and underscores are dropped. An empty result
// falls back to the default label.
func AssetName(label string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(label) {
		ok := r == '.' || r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok || r == '_' {
			if !lastUnderscore {
				b.WriteByte('_')
			}
			lastUnderscore = true
			continue
		}
		b.WriteRune(r)
		lastUnderscore = false
	}

	name := strings.Trim(b.String(), "._")
	if name == "" {
		return settings.DefaultFileName
	}
	return name
}
