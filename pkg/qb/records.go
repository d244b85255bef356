package qb

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
)

// Field describes one column of a table, as returned in the fields
// section of a query response.
type Field struct {
	ID    int    `json:"id"             yaml:"id"`
	Label string `json:"label"          yaml:"label"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
}

// FieldValue is the wire wrapper around a single cell value.
type FieldValue struct {
	Value any `json:"value"`
}

// WireRecord is one row in the vendor's field-indexed wire format:
// field id (as a string) to wrapped value.
type WireRecord map[string]FieldValue

// FlatRecord is a denormalized row keyed by field id or label, plus a
// synthesized "rid" entry when the record carries the reserved Record
// ID# field.
type FlatRecord map[string]any

// RecordIDKey is the synthesized FlatRecord key holding the record id.
const RecordIDKey = "rid"

// recordIDFieldID is the reserved Record ID# field id as a wire key.
var recordIDFieldID = strconv.Itoa(constants.RecordIDFieldID)

// FieldMap builds an id→label mapping from a field descriptor list.
// Later descriptors with the same id overwrite earlier ones.
func FieldMap(fields []Field) map[string]string {
	fieldMap := make(map[string]string, len(fields))
	for _, field := range fields {
		fieldMap[strconv.Itoa(field.ID)] = field.Label
	}

	return fieldMap
}

// Flatten converts a wire record into a FlatRecord.
//
// With useLabels false, keys are the raw field ids. With useLabels true,
// keys come from the effective field map (overrides wins over nothing
// here since it is the only map supplied); fields without a label entry
// are dropped rather than falling back to their id, so a label-keyed
// record never mixes key styles.
//
// Regardless of the key style, a record carrying the reserved Record
// ID# field ("3") gets a synthesized "rid" key with that field's value.
// The rid entry is written last, so it wins over a regular field that
// happens to flatten to the same key.
func Flatten(record WireRecord, useLabels bool, fieldMap map[string]string) FlatRecord {
	flat := make(FlatRecord, len(record)+1)

	for fieldID, cell := range record {
		if useLabels {
			label, ok := fieldMap[fieldID]
			if !ok {
				continue
			}

			flat[label] = cell.Value

			continue
		}

		flat[fieldID] = cell.Value
	}

	if cell, ok := record[recordIDFieldID]; ok {
		flat[RecordIDKey] = cell.Value
	}

	return flat
}

// Normalize converts a flat field-id→value map into a wire record.
// Values already shaped like a wire wrapper (a FieldValue, or a map
// carrying a "value" key) pass through unchanged, so callers can mix
// pre-wrapped and raw values in one record.
func Normalize(record map[string]any) WireRecord {
	wire := make(WireRecord, len(record))

	for fieldID, value := range record {
		switch v := value.(type) {
		case FieldValue:
			wire[fieldID] = v
		case map[string]any:
			if inner, ok := v["value"]; ok && len(v) == 1 {
				wire[fieldID] = FieldValue{Value: inner}
			} else {
				wire[fieldID] = FieldValue{Value: v}
			}
		default:
			wire[fieldID] = FieldValue{Value: value}
		}
	}

	return wire
}

// ParseWireRecords decodes the data section of a query response. A
// field cell that is not an object wrapper fails with
// ErrMalformedRecord rather than producing a half-decoded row.
func ParseWireRecords(data []json.RawMessage) ([]WireRecord, error) {
	records := make([]WireRecord, 0, len(data))

	for i, raw := range data {
		var record WireRecord

		err := json.Unmarshal(raw, &record)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedRecord, i, err)
		}

		records = append(records, record)
	}

	return records, nil
}
