/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"

	"github.com/suparena/attribution"
)

// encodeFields converts record fields to an item. Unset fields are omitted.
func encodeFields(fields []attribution.Field) (map[string]types.AttributeValue, error) {
	item := make(map[string]types.AttributeValue, len(fields)+3)
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		av, err := toAttributeValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", f.Name, err)
		}
		item[f.Name] = av
	}
	return item, nil
}

func toAttributeValue(v any) (types.AttributeValue, error) {
	switch tv := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case string:
		return &types.AttributeValueMemberS{Value: tv}, nil
	case bool:
		return &types.AttributeValueMemberBOOL{Value: tv}, nil
	case int:
		return &types.AttributeValueMemberN{Value: strconv.Itoa(tv)}, nil
	case int64:
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(tv, 10)}, nil
	case float64:
		return &types.AttributeValueMemberN{Value: strconv.FormatFloat(tv, 'f', -1, 64)}, nil
	case json.Number:
		return &types.AttributeValueMemberN{Value: tv.String()}, nil
	case decimal.Decimal:
		return &types.AttributeValueMemberN{Value: tv.String()}, nil
	case strfmt.Date:
		return &types.AttributeValueMemberS{Value: tv.String()}, nil
	case time.Time:
		return &types.AttributeValueMemberS{Value: tv.Format(time.RFC3339Nano)}, nil
	case *time.Location:
		return &types.AttributeValueMemberS{Value: tv.String()}, nil
	default:
		return attributevalue.Marshal(v)
	}
}

// decodeItem converts an item back to attribute input. Numbers stay
// json.Number so the class coercer sees their exact text.
func decodeItem(item map[string]types.AttributeValue) (map[string]any, error) {
	fields := make(map[string]any, len(item))
	for name, av := range item {
		switch tv := av.(type) {
		case *types.AttributeValueMemberS:
			fields[name] = tv.Value
		case *types.AttributeValueMemberN:
			fields[name] = json.Number(tv.Value)
		case *types.AttributeValueMemberBOOL:
			fields[name] = tv.Value
		case *types.AttributeValueMemberNULL:
			fields[name] = nil
		default:
			var v any
			if err := attributevalue.Unmarshal(av, &v); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			fields[name] = v
		}
	}
	return fields, nil
}
