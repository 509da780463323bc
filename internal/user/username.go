package user

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]`)
	underscores = regexp.MustCompile(`_+`)
)

// baseUsername derives a username candidate from a display name:
// lowercase, non-alphanumerics replaced with underscore, repeats
// collapsed, leading/trailing underscores trimmed. Empty names fall
// back to a timestamped placeholder.
func baseUsername(displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return fmt.Sprintf("user_%d", time.Now().UnixMilli())
	}

	name = strings.ToLower(name)
	name = nonAlnum.ReplaceAllString(name, "_")
	name = underscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return fmt.Sprintf("user_%d", time.Now().UnixMilli())
	}
	return name
}

// uniqueUsername appends a numeric suffix to the base candidate until
// the store reports no collision.
func uniqueUsername(ctx context.Context, store Store, displayName string) (string, error) {
	base := baseUsername(displayName)

	candidate := base
	for counter := 1; ; counter++ {
		exists, err := store.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", base, counter)
	}
}
