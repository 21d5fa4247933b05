package helpers

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// GetNullString converts a string pointer to sql.NullString.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetNullInt64 converts an int64 to sql.NullInt64, treating 0 as NULL.
func GetNullInt64(i int64) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: i, Valid: true}
}

// EncodeList serializes a list-valued field for a JSONB column. The
// application layers only ever see native slices; the serialized form stays
// at the persistence boundary.
func EncodeList(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode list field: %w", err)
	}
	return data, nil
}

// DecodeList deserializes a JSONB column into a list-valued field. A NULL
// column decodes to an empty slice.
func DecodeList(data []byte, dest interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode list field: %w", err)
	}
	return nil
}
