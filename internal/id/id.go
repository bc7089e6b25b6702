// Package id generates prefixed NanoIDs for grocery lists and their items.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for generated identifiers.
const (
	PrefixGroceryList = "gl"
	PrefixItem        = "item"
)

// Generate returns prefix-nanoid, for example "gl-V1StGXR8_Z5jdHi6B-myT".
// It fails only when the system entropy source does.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// GroceryList returns a new grocery list ID.
func GroceryList() (string, error) {
	return Generate(PrefixGroceryList)
}

// Item returns a new grocery list item ID.
func Item() (string, error) {
	return Generate(PrefixItem)
}

// MustGenerate is like Generate but panics on failure. Only for seed data
// and tests.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}
