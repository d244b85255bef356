package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

func TestParseFieldIDs(t *testing.T) {
	t.Parallel()

	ids, err := parseFieldIDs("3,6, 7")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6, 7}, ids)
}

func TestParseFieldIDs_Empty(t *testing.T) {
	t.Parallel()

	ids, err := parseFieldIDs("")
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestParseFieldIDs_Invalid(t *testing.T) {
	t.Parallel()

	_, err := parseFieldIDs("3,abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid field id "abc"`)
}

func TestParseSortSpec(t *testing.T) {
	t.Parallel()

	sorts, err := parseSortSpec("6:ASC,7:desc")
	require.NoError(t, err)
	assert.Equal(t, []qb.SortField{
		{FieldID: 6, Order: qb.SortAscending},
		{FieldID: 7, Order: qb.SortDescending},
	}, sorts)
}

func TestParseSortSpec_DefaultsToAscending(t *testing.T) {
	t.Parallel()

	sorts, err := parseSortSpec("6")
	require.NoError(t, err)
	assert.Equal(t, []qb.SortField{{FieldID: 6, Order: qb.SortAscending}}, sorts)
}

func TestParseSortSpec_Invalid(t *testing.T) {
	t.Parallel()

	_, err := parseSortSpec("name:ASC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort field")
}
