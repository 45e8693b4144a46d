package kv

import (
	"context"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Field is one raw field of a prefixed record.
type Field struct {
	Field string
	Value string
}

// ParsedField is a field whose value was parsed as an unsigned integer.
// Value is nil when the stored value was not a valid uint64.
type ParsedField struct {
	Field string
	Value *uint64
}

// QueryPrefix returns the fields of the record prefix:id sorted by field name.
// A missing record yields an empty slice.
func (s *Store) QueryPrefix(ctx context.Context, prefix Prefix, id string) ([]Field, error) {
	key := prefix.Key(id)
	values, err := run(ctx, s, "query_prefix", func(ctx context.Context, rdb *redis.Client) (map[string]string, error) {
		return rdb.HGetAll(ctx, key).Result()
	})
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(values))
	for f, v := range values {
		fields = append(fields, Field{Field: f, Value: v})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return fields, nil
}

// QueryPrefixParsed is QueryPrefix with every value parsed as a uint64.
// A value that does not parse becomes nil without affecting the other fields.
func (s *Store) QueryPrefixParsed(ctx context.Context, prefix Prefix, id string) ([]ParsedField, error) {
	raw, err := s.QueryPrefix(ctx, prefix, id)
	if err != nil {
		return nil, err
	}

	parsed := make([]ParsedField, len(raw))
	for i, f := range raw {
		parsed[i].Field = f.Field
		n, perr := strconv.ParseUint(f.Value, 10, 64)
		if perr != nil {
			s.logger.Debug("Non-numeric value in prefixed record",
				zap.String("key", prefix.Key(id)),
				zap.String("field", f.Field),
				zap.String("value", f.Value))
			continue
		}
		parsed[i].Value = &n
	}
	return parsed, nil
}

// FieldNames returns just the field names of fields, in order.
func FieldNames(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Field
	}
	return out
}
