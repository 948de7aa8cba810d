package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap stores a free-form JSON object column portably across drivers.
type JSONMap map[string]any

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return m.unmarshal(v)
	case string:
		return m.unmarshal([]byte(v))
	default:
		return fmt.Errorf("JSONMap: unsupported Scan type %T", src)
	}
}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("JSONMap: marshal: %w", err)
	}
	return string(raw), nil
}

func (m *JSONMap) unmarshal(raw []byte) error {
	if len(raw) == 0 {
		*m = JSONMap{}
		return nil
	}
	if err := json.Unmarshal(raw, m); err != nil {
		return fmt.Errorf("JSONMap: unmarshal: %w", err)
	}
	return nil
}

// StringList stores a JSON array of strings.
type StringList []string

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return l.unmarshal(v)
	case string:
		return l.unmarshal([]byte(v))
	default:
		return fmt.Errorf("StringList: unsupported Scan type %T", src)
	}
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("StringList: marshal: %w", err)
	}
	return string(raw), nil
}

func (l *StringList) unmarshal(raw []byte) error {
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	if err := json.Unmarshal(raw, l); err != nil {
		return fmt.Errorf("StringList: unmarshal: %w", err)
	}
	return nil
}

// ObjectList stores a JSON array of free-form objects.
type ObjectList []map[string]any

func (l *ObjectList) Scan(src any) error {
	if src == nil {
		*l = ObjectList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return l.unmarshal(v)
	case string:
		return l.unmarshal([]byte(v))
	default:
		return fmt.Errorf("ObjectList: unsupported Scan type %T", src)
	}
}

func (l ObjectList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("ObjectList: marshal: %w", err)
	}
	return string(raw), nil
}

func (l *ObjectList) unmarshal(raw []byte) error {
	if len(raw) == 0 {
		*l = ObjectList{}
		return nil
	}
	if err := json.Unmarshal(raw, l); err != nil {
		return fmt.Errorf("ObjectList: unmarshal: %w", err)
	}
	return nil
}

// Contains reports whether the list holds the given value.
func (l StringList) Contains(value string) bool {
	for _, candidate := range l {
		if candidate == value {
			return true
		}
	}
	return false
}

// TransactionIdentifier is a serialized name/id pair carried on invoices.
type TransactionIdentifier struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// TransactionIdentifierList stores a JSON array of transaction identifiers.
type TransactionIdentifierList []TransactionIdentifier

func (l *TransactionIdentifierList) Scan(src any) error {
	if src == nil {
		*l = TransactionIdentifierList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return l.unmarshal(v)
	case string:
		return l.unmarshal([]byte(v))
	default:
		return fmt.Errorf("TransactionIdentifierList: unsupported Scan type %T", src)
	}
}

func (l TransactionIdentifierList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("TransactionIdentifierList: marshal: %w", err)
	}
	return string(raw), nil
}

func (l *TransactionIdentifierList) unmarshal(raw []byte) error {
	if len(raw) == 0 {
		*l = TransactionIdentifierList{}
		return nil
	}
	if err := json.Unmarshal(raw, l); err != nil {
		return fmt.Errorf("TransactionIdentifierList: unmarshal: %w", err)
	}
	return nil
}
