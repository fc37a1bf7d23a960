/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/attribution/datastore"
	"github.com/suparena/attribution/registry"
)

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// DefaultIndexMap keys a class's items as "<CLASS>#{id}" in both PK and SK.
func DefaultIndexMap(className string) map[string]string {
	prefix := strings.ToUpper(registry.Underscore(registry.BaseName(className)))
	return map[string]string{
		"PK": prefix + "#{id}",
		"SK": prefix + "#{id}",
	}
}

// expandMacros replaces every "{field}" in the templates with the value of
// that field. Missing fields expand to "".
func expandMacros(indexMap map[string]string, values map[string]any) map[string]string {
	res := make(map[string]string, len(indexMap))
	for attr, template := range indexMap {
		res[attr] = expand(template, values)
	}
	return res
}

func expand(template string, values map[string]any) string {
	return macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
		field := strings.Trim(macro, "{}")
		return datastore.Key(values[field])
	})
}

// macroFields returns the field names a template refers to.
func macroFields(template string) []string {
	var fields []string
	for _, m := range macroPattern.FindAllStringSubmatch(template, -1) {
		fields = append(fields, m[1])
	}
	return fields
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It requires non-empty "PK" and "SK" values.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}
