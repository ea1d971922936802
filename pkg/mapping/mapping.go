package mapping

import "database/sql"

func ValueToSQLNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func SQLNullStringToValue(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

func Pointer[T any](value T) *T {
	return &value
}

func Value[T any](value *T) T {
	if value == nil {
		var zero T
		return zero
	}
	return *value
}
