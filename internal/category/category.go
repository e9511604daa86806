// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package category parses category names and derives the two-level
// navigation tree used to filter the portfolio. A name is either a bare
// top-level category ("VideoCommish") or a parent/child pair split on the
// first "/" ("GTACommish/Vehicle").
package category

import (
	"errors"
	"strings"

	"folio/internal/models"
)

// Separator divides a parent category from its child.
const Separator = "/"

var (
	// ErrEmptyName is returned for a blank category name.
	ErrEmptyName = errors.New("category name is required")

	// ErrEmptySegment is returned when a parent or child segment is blank,
	// e.g. "Gallery/" or "a//b".
	ErrEmptySegment = errors.New("category name has an empty segment")

	// ErrReservedName is returned when creating or deleting "all".
	ErrReservedName = errors.New("category name is reserved")

	// ErrDuplicate is returned when a category with the same name exists.
	ErrDuplicate = errors.New("category already exists")
)

// Normalize trims surrounding whitespace from a submitted name.
func Normalize(name string) string {
	return strings.TrimSpace(name)
}

// IsReserved reports whether name is the reserved "all" category.
func IsReserved(name string) bool {
	return Normalize(name) == models.CategoryAll
}

// underReserved reports whether name nests below "all", e.g. "all/x".
func underReserved(name string) bool {
	parent, _, nested := Split(Normalize(name))
	return nested && parent == models.CategoryAll
}

// Split returns the parent and child segments of name. For a bare name,
// child is empty and nested is false. Only the first "/" splits, so
// "a/b/c" yields parent "a" and child "b/c".
func Split(name string) (parent, child string, nested bool) {
	parent, child, nested = strings.Cut(name, Separator)
	return parent, child, nested
}

// Label converts a camel-cased segment into display text by inserting a
// space before every uppercase letter: "GTACommish" -> "G T A Commish",
// "VideoCommish" -> "Video Commish".
func Label(segment string) string {
	var b strings.Builder
	b.Grow(len(segment) + 4)
	for _, r := range segment {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Validate checks the shape of a name without consulting storage.
func Validate(name string) error {
	name = Normalize(name)
	if name == "" {
		return ErrEmptyName
	}
	parent, child, nested := Split(name)
	if strings.TrimSpace(parent) == "" {
		return ErrEmptySegment
	}
	if nested {
		for _, seg := range strings.Split(child, Separator) {
			if strings.TrimSpace(seg) == "" {
				return ErrEmptySegment
			}
		}
	}
	return nil
}

// ValidateCreate checks whether a category called name may be created.
// exists reports whether storage already holds that name.
func ValidateCreate(name string, exists bool) error {
	if err := Validate(name); err != nil {
		return err
	}
	if IsReserved(name) || underReserved(name) {
		return ErrReservedName
	}
	if exists {
		return ErrDuplicate
	}
	return nil
}

// ValidateDelete rejects deleting the reserved "all" category. It does not
// consult storage.
func ValidateDelete(name string) error {
	if IsReserved(name) {
		return ErrReservedName
	}
	if Normalize(name) == "" {
		return ErrEmptyName
	}
	return nil
}
