package storage

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"clipvault/internal/services"
)

// NormalizeKey canonicalizes a filename into a storage key. Unicode is
// normalized to NFC so macOS-decomposed filenames and their composed
// equivalents address the same object.
func NormalizeKey(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ValidateKey rejects filenames that cannot serve as object keys. Filenames
// are used verbatim as keys, so path separators and control characters are
// refused up front instead of failing inside the storage backend.
func ValidateKey(key string) error {
	if key == "" {
		return services.Wrap(services.ErrValidation, "storage", "validate key",
			"", services.WithUserMessage("invalid file name", nil))
	}
	if key == "." || key == ".." {
		return invalidKey(key)
	}
	if strings.ContainsAny(key, "/\\") {
		return invalidKey(key)
	}
	for _, r := range key {
		if r < 0x20 || r == 0x7f {
			return invalidKey(key)
		}
	}
	return nil
}

func invalidKey(key string) error {
	return services.Wrap(services.ErrValidation, "storage", "validate key",
		fmt.Sprintf("unusable key %q", key),
		services.WithUserMessage("invalid file name", nil))
}
