package qb_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

func TestFieldMap(t *testing.T) {
	t.Parallel()

	fields := []qb.Field{
		{ID: 3, Label: "Record ID#"},
		{ID: 6, Label: "Name"},
		{ID: 7, Label: "Amount"},
	}

	fieldMap := qb.FieldMap(fields)
	assert.Equal(t, map[string]string{
		"3": "Record ID#",
		"6": "Name",
		"7": "Amount",
	}, fieldMap)
}

func TestFieldMap_DuplicateIDLastWins(t *testing.T) {
	t.Parallel()

	fields := []qb.Field{
		{ID: 6, Label: "Old Label"},
		{ID: 6, Label: "New Label"},
	}

	fieldMap := qb.FieldMap(fields)
	assert.Equal(t, "New Label", fieldMap["6"])
}

func TestFlatten_ByFieldID(t *testing.T) {
	t.Parallel()

	record := qb.WireRecord{
		"6": {Value: "Bob"},
		"7": {Value: 42},
	}

	flat := qb.Flatten(record, false, nil)
	assert.Equal(t, qb.FlatRecord{"6": "Bob", "7": 42}, flat)
}

func TestFlatten_ByLabel(t *testing.T) {
	t.Parallel()

	record := qb.WireRecord{
		"6": {Value: "Bob"},
		"3": {Value: 42},
	}
	fieldMap := map[string]string{"6": "Name"}

	flat := qb.Flatten(record, true, fieldMap)

	// Field 3 has no label entry, so it only survives as the
	// synthesized record id.
	assert.Equal(t, qb.FlatRecord{"Name": "Bob", "rid": 42}, flat)
}

func TestFlatten_InjectsRecordID(t *testing.T) {
	t.Parallel()

	record := qb.WireRecord{
		"3": {Value: 17},
		"6": {Value: "Bob"},
	}

	flat := qb.Flatten(record, false, nil)
	assert.Equal(t, 17, flat[qb.RecordIDKey])
	assert.Equal(t, 17, flat["3"])
}

func TestFlatten_RecordIDWinsOverLabelCollision(t *testing.T) {
	t.Parallel()

	// A regular field labeled "rid" collides with the synthesized key;
	// the record id wins.
	record := qb.WireRecord{
		"3": {Value: 17},
		"9": {Value: "not the id"},
	}
	fieldMap := map[string]string{"9": "rid"}

	flat := qb.Flatten(record, true, fieldMap)
	assert.Equal(t, 17, flat[qb.RecordIDKey])
}

func TestFlatten_Idempotent(t *testing.T) {
	t.Parallel()

	record := qb.WireRecord{
		"3": {Value: 1},
		"6": {Value: "x"},
	}
	fieldMap := map[string]string{"6": "Name"}

	first := qb.Flatten(record, true, fieldMap)
	second := qb.Flatten(record, true, fieldMap)
	assert.Equal(t, first, second)
}

func TestNormalize_WrapsRawValues(t *testing.T) {
	t.Parallel()

	wire := qb.Normalize(map[string]any{
		"6": "Bob",
		"7": 42,
	})

	assert.Equal(t, qb.WireRecord{
		"6": {Value: "Bob"},
		"7": {Value: 42},
	}, wire)
}

func TestNormalize_PassesWrappedValuesThrough(t *testing.T) {
	t.Parallel()

	wire := qb.Normalize(map[string]any{
		"6": qb.FieldValue{Value: "Bob"},
		"7": map[string]any{"value": 42},
		"8": "raw",
	})

	assert.Equal(t, qb.WireRecord{
		"6": {Value: "Bob"},
		"7": {Value: 42},
		"8": {Value: "raw"},
	}, wire)
}

func TestNormalize_RoundTripsFlatten(t *testing.T) {
	t.Parallel()

	// Scalar-valued record without the reserved id field, so the
	// synthesized rid key does not enter the round trip.
	record := qb.WireRecord{
		"6": {Value: "Bob"},
		"7": {Value: 42},
		"8": {Value: true},
	}

	flat := qb.Flatten(record, false, nil)
	assert.Equal(t, record, qb.Normalize(flat))
}

func TestParseWireRecords(t *testing.T) {
	t.Parallel()

	data := []json.RawMessage{
		json.RawMessage(`{"3":{"value":1},"6":{"value":"Bob"}}`),
	}

	records, err := qb.ParseWireRecords(data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Bob", records[0]["6"].Value)
}

func TestParseWireRecords_MalformedCell(t *testing.T) {
	t.Parallel()

	data := []json.RawMessage{
		json.RawMessage(`{"6":"not wrapped"}`),
	}

	_, err := qb.ParseWireRecords(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, qb.ErrMalformedRecord)
}
