/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a lookup collaborator cannot find a record
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when construction input cannot be decoded
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownTimeZone is returned when a time zone name is not in the directory
	ErrUnknownTimeZone = errors.New("unknown time zone")

	// ErrDuplicateAttribute is returned when a class declares the same attribute twice
	ErrDuplicateAttribute = errors.New("duplicate attribute")

	// ErrDuplicateClass is returned when a class name is registered twice
	ErrDuplicateClass = errors.New("duplicate class")

	// ErrUnresolvedClass is returned when an association target class cannot be found
	ErrUnresolvedClass = errors.New("unresolved class")

	// ErrUnknownAttribute is returned when writing an attribute that was never declared
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrUnknownAssociation is returned when reading an association that was never declared
	ErrUnknownAssociation = errors.New("unknown association")

	// ErrNoLookup is returned when an association needs a lookup the target class does not provide
	ErrNoLookup = errors.New("no lookup collaborator")
)

// NotFoundError represents a record missing from a lookup collaborator
type NotFoundError struct {
	Class string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Class, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents undecodable construction input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnknownTimeZoneError is the caller error raised for an unrecognised zone name
type UnknownTimeZoneError struct {
	Name string
}

func (e *UnknownTimeZoneError) Error() string {
	return fmt.Sprintf("unknown time zone %q", e.Name)
}

func (e *UnknownTimeZoneError) Is(target error) bool {
	return target == ErrUnknownTimeZone
}

// DeclarationError is a class-declaration-time failure
type DeclarationError struct {
	Class  string
	Member string
	Err    error
}

func (e *DeclarationError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("declaring %s.%s: %v", e.Class, e.Member, e.Err)
	}
	return fmt.Sprintf("declaring %s: %v", e.Class, e.Err)
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}

// UnresolvedClassError represents an association whose target class is not registered
type UnresolvedClassError struct {
	Class       string
	Association string
	Target      string
}

func (e *UnresolvedClassError) Error() string {
	return fmt.Sprintf("%s.%s: target class %q not found", e.Class, e.Association, e.Target)
}

func (e *UnresolvedClassError) Is(target error) bool {
	return target == ErrUnresolvedClass
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(class, key string) error {
	return &NotFoundError{Class: class, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewUnknownTimeZoneError creates a new UnknownTimeZoneError
func NewUnknownTimeZoneError(name string) error {
	return &UnknownTimeZoneError{Name: name}
}

// NewDeclarationError wraps err as a declaration failure of class.member
func NewDeclarationError(class, member string, err error) error {
	return &DeclarationError{Class: class, Member: member, Err: err}
}

// NewUnresolvedClassError creates a new UnresolvedClassError
func NewUnresolvedClassError(class, association, target string) error {
	return &UnresolvedClassError{Class: class, Association: association, Target: target}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is an invalid input error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnknownTimeZone checks if an error is an unknown time zone error
func IsUnknownTimeZone(err error) bool {
	return errors.Is(err, ErrUnknownTimeZone)
}

// IsDeclarationError checks if an error happened while declaring a class
func IsDeclarationError(err error) bool {
	var de *DeclarationError
	return errors.As(err, &de)
}

// IsUnresolvedClass checks if an error is an unresolved class error
func IsUnresolvedClass(err error) bool {
	return errors.Is(err, ErrUnresolvedClass)
}
