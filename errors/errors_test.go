/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("Book", "42")

	// Test error message
	expected := `Book with key "42" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	// Test helper function
	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestUnknownTimeZoneError(t *testing.T) {
	err := NewUnknownTimeZoneError("Atlantis")

	expected := `unknown time zone "Atlantis"`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsUnknownTimeZone(err) {
		t.Error("IsUnknownTimeZone should return true for UnknownTimeZoneError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "chapters",
			message:  "expected a sequence",
			expected: `invalid input for field "chapters": expected a sequence`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "malformed JSON",
			expected: "invalid input: malformed JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestDeclarationError(t *testing.T) {
	err := NewDeclarationError("Chapter", "title", ErrDuplicateAttribute)

	expected := "declaring Chapter.title: duplicate attribute"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrDuplicateAttribute) {
		t.Error("DeclarationError should unwrap to its cause")
	}

	if !IsDeclarationError(err) {
		t.Error("IsDeclarationError should return true for DeclarationError")
	}

	if IsDeclarationError(ErrDuplicateAttribute) {
		t.Error("IsDeclarationError should return false for a bare sentinel")
	}
}

func TestUnresolvedClassError(t *testing.T) {
	err := NewUnresolvedClassError("Music.Album", "tracks", "Track")

	expected := `Music.Album.tracks: target class "Track" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsUnresolvedClass(err) {
		t.Error("IsUnresolvedClass should return true for UnresolvedClassError")
	}
}

func TestErrorWrapping(t *testing.T) {
	// Test that wrapped errors still match
	original := NewNotFoundError("Book", "42")
	wrapped := fmt.Errorf("lookup failed: %w", original)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("Wrapped NotFoundError should still match ErrNotFound")
	}

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should work with wrapped errors")
	}
}

func TestSentinelErrors(t *testing.T) {
	// Ensure sentinel errors are distinct
	sentinels := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnknownTimeZone,
		ErrDuplicateAttribute,
		ErrDuplicateClass,
		ErrUnresolvedClass,
		ErrUnknownAttribute,
		ErrUnknownAssociation,
		ErrNoLookup,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
