/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	"github.com/suparena/attribution"
	"github.com/suparena/attribution/errors"
)

// EntityTypeAttribute is stamped on every item written by a Source and used
// to tell classes apart inside a shared partition.
const EntityTypeAttribute = "EntityType"

// API is the subset of the DynamoDB client a Source uses.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// Source stores the records of one class in a single DynamoDB table and
// serves them as association lookups.
type Source struct {
	client   API
	table    string
	class    *attribution.Class
	indexMap map[string]string
	indexes  map[string]GSIConfig
	logger   zerolog.Logger
}

// Option configures a Source.
type Option func(*Source) error

// WithIndexMap replaces the default key templates. It must define "PK" and
// "SK"; GSI key attributes may be added alongside.
func WithIndexMap(indexMap map[string]string) Option {
	return func(s *Source) error {
		if indexMap["PK"] == "" || indexMap["SK"] == "" {
			return errors.NewValidationError("indexMap", "PK and SK templates are required")
		}
		s.indexMap = make(map[string]string, len(indexMap))
		for k, v := range indexMap {
			s.indexMap[k] = v
		}
		return nil
	}
}

// WithForeignKeyIndex routes queries on foreignKey to the named GSI. The
// index map must carry a template for the GSI's partition key.
func WithForeignKeyIndex(foreignKey, indexName string) Option {
	return func(s *Source) error {
		cfg, ok := GetGSIConfig(indexName)
		if !ok {
			return errors.NewValidationError("index", fmt.Sprintf("unknown GSI %q", indexName))
		}
		s.indexes[foreignKey] = cfg
		return nil
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Source) error {
		s.logger = l
		return nil
	}
}

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// New builds a Source for class c backed by table.
func New(client API, table string, c *attribution.Class, opts ...Option) (*Source, error) {
	if client == nil || c == nil || table == "" {
		return nil, errors.NewValidationError("source", "client, table and class are required")
	}
	s := &Source{
		client:   client,
		table:    table,
		class:    c,
		indexMap: DefaultIndexMap(c.Name()),
		indexes:  make(map[string]GSIConfig),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	for fk, cfg := range s.indexes {
		if s.indexMap[cfg.PartitionKeyName] == "" {
			return nil, errors.NewValidationError(fk,
				fmt.Sprintf("index map has no %s template for %s", cfg.PartitionKeyName, cfg.IndexName))
		}
	}
	return s, nil
}

// Class returns the class the source serves.
func (s *Source) Class() *attribution.Class { return s.class }

// Find fetches the record whose id is key. A missing item yields nil, nil.
func (s *Source) Find(ctx context.Context, key any) (*attribution.Record, error) {
	expanded := expandMacros(s.indexMap, map[string]any{"id": key})
	keyMap, err := buildKeyFromExpanded(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	s.logger.Debug().
		Str("table", s.table).
		Str("class", s.class.Name()).
		Str("pk", expanded["PK"]).
		Msg("get item")

	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.table,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	return s.decode(out.Item)
}

// All queries the GSI bound to one of the query's keys. The first key, in
// sorted order, that has an index becomes the key condition; the rest are
// applied as filters.
func (s *Source) All(ctx context.Context, q attribution.Query) ([]*attribution.Record, error) {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		indexKey string
		gsi      GSIConfig
	)
	for _, k := range keys {
		if cfg, ok := s.indexes[k]; ok {
			indexKey, gsi = k, cfg
			break
		}
	}
	if indexKey == "" {
		return nil, errors.NewValidationError("query",
			fmt.Sprintf("no index serves any of %v on %s", keys, s.class.Name()))
	}

	values := map[string]any(q)
	names := map[string]string{
		"#pk": gsi.PartitionKeyName,
		"#et": EntityTypeAttribute,
	}
	exprValues := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: expand(s.indexMap[gsi.PartitionKeyName], values)},
		":et": &types.AttributeValueMemberS{Value: s.class.Name()},
	}
	filters := []string{"#et = :et"}
	consumed := make(map[string]bool)
	for _, f := range macroFields(s.indexMap[gsi.PartitionKeyName]) {
		consumed[f] = true
	}
	for i, k := range keys {
		if consumed[k] {
			continue
		}
		av, err := toAttributeValue(q[k])
		if err != nil {
			return nil, fmt.Errorf("query value %s: %w", k, err)
		}
		name, value := fmt.Sprintf("#f%d", i), fmt.Sprintf(":f%d", i)
		names[name] = k
		exprValues[value] = av
		filters = append(filters, name+" = "+value)
	}

	keyCond := "#pk = :pk"
	filter := strings.Join(filters, " AND ")
	input := &sdk.QueryInput{
		TableName:                 &s.table,
		IndexName:                 &gsi.IndexName,
		KeyConditionExpression:    &keyCond,
		FilterExpression:          &filter,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: exprValues,
	}

	s.logger.Debug().
		Str("table", s.table).
		Str("class", s.class.Name()).
		Str("index", gsi.IndexName).
		Str("foreign_key", indexKey).
		Msg("query")

	var records []*attribution.Record
	for {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("Query error: %w", err)
		}
		for _, item := range out.Items {
			r, err := s.decode(item)
			if err != nil {
				return nil, err
			}
			records = append(records, r)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	if records == nil {
		records = []*attribution.Record{}
	}
	return records, nil
}

// Put writes r, adding the expanded key attributes and the entity type.
func (s *Source) Put(ctx context.Context, r *attribution.Record) error {
	if r == nil || !r.Class().IsA(s.class) {
		return errors.NewValidationError("record", fmt.Sprintf("expected a %s", s.class.Name()))
	}

	item, err := encodeFields(r.Fields())
	if err != nil {
		return err
	}
	expanded := expandMacros(s.indexMap, r.ToMap())
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return fmt.Errorf("failed to build key: %w", err)
	}
	for attr, v := range expanded {
		item[attr] = &types.AttributeValueMemberS{Value: v}
	}
	item[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: r.Class().Name()}

	_, err = s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

func (s *Source) decode(item map[string]types.AttributeValue) (*attribution.Record, error) {
	fields, err := decodeItem(item)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	r, err := s.class.New(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", s.class.Name(), err)
	}
	return r, nil
}
