/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attribution

import (
	"github.com/suparena/attribution/coerce"
)

// AttributeDefinition describes one declared, typed attribute.
// Required and Doc are recorded for introspection and never enforced.
type AttributeDefinition struct {
	Name     string      `json:"name" yaml:"name"`
	Type     coerce.Kind `json:"type" yaml:"type"`
	Required bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Doc      string      `json:"doc,omitempty" yaml:"doc,omitempty"`
}

// AttributeOption sets optional metadata on an attribute.
type AttributeOption func(*AttributeDefinition)

// Required marks the attribute as required.
func Required() AttributeOption {
	return func(d *AttributeDefinition) {
		d.Required = true
	}
}

// Doc attaches free-form documentation.
func Doc(text string) AttributeOption {
	return func(d *AttributeDefinition) {
		d.Doc = text
	}
}
