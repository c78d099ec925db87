package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON document in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// Question is the row model for the questions table.
type Question struct {
	ID            string         `db:"id"`
	Category      string         `db:"category"`
	Difficulty    string         `db:"difficulty"`
	QuestionText  string         `db:"question_text"`
	Options       StringSlice    `db:"options"`
	CorrectAnswer string         `db:"correct_answer"`
	Explanation   string         `db:"explanation"`
	Enrichment    sql.NullString `db:"enrichment"`
	Source        string         `db:"source"`
	Active        int            `db:"active"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     sql.NullTime   `db:"deleted_at"`
}

// FieldMapping is the row model for the field_mappings relation.
type FieldMapping struct {
	QuestionID string    `db:"question_id"`
	Field      string    `db:"field"`
	Weight     int       `db:"weight"`
	IsPrimary  int       `db:"is_primary"`
	CreatedAt  time.Time `db:"created_at"`
}

// QuestionStats is the row model for per-question usage counters.
type QuestionStats struct {
	QuestionID   string    `db:"question_id"`
	Attempts     int64     `db:"attempts"`
	CorrectCount int64     `db:"correct_count"`
	UpdatedAt    time.Time `db:"updated_at"`
}
