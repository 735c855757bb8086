package domain

import (
	"fmt"
	"strings"
)

// DeclaredExtension is a single entry in the declared extension list
type DeclaredExtension struct {
	ID   string `yaml:"id" json:"id"`                       // e.g. "golang.go"
	UUID string `yaml:"uuid,omitempty" json:"uuid,omitempty"` // registry-assigned, optional
}

// ExtensionList mirrors the declared list file layout
// The enabled field is optional; a missing list means nothing to sync
type ExtensionList struct {
	Enabled []DeclaredExtension `yaml:"enabled"`
}

// Declared returns the enabled entries with empty IDs dropped,
// preserving declaration order
func (l *ExtensionList) Declared() []DeclaredExtension {
	declared := make([]DeclaredExtension, 0, len(l.Enabled))
	for _, ext := range l.Enabled {
		if ext.ID == "" {
			continue
		}
		declared = append(declared, ext)
	}
	return declared
}

// Count returns the number of enabled entries, empty IDs included
func (l *ExtensionList) Count() int {
	return len(l.Enabled)
}

// SplitIdentifier splits a "publisher.name" identifier into its two
// segments. Anything other than exactly two non-empty dot-separated
// segments fails with ErrInvalidIdentifier.
func SplitIdentifier(id string) (publisher, name string, err error) {
	parts := strings.Split(id, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return parts[0], parts[1], nil
}

// LookupPath converts an identifier into the primary registry's path
// form, every dot becoming a path separator
func LookupPath(id string) string {
	return strings.ReplaceAll(id, ".", "/")
}
