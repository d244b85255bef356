package qb

import (
	"encoding/json"
)

// SortField is one entry of a query's sortBy clause.
type SortField struct {
	FieldID int    `json:"fieldId"`
	Order   string `json:"order"`
}

// Sort orders.
const (
	SortAscending  = "ASC"
	SortDescending = "DESC"
)

// QueryOptions tunes paging behavior of a query.
type QueryOptions struct {
	Skip int `json:"skip,omitempty"`
	Top  int `json:"top,omitempty"`
}

// QueryRequest is the body of a records query. Where is an opaque
// vendor query string and is passed through verbatim.
type QueryRequest struct {
	From    string        `json:"from"`
	Select  []int         `json:"select"`
	Where   string        `json:"where"`
	SortBy  []SortField   `json:"sortBy,omitempty"`
	Options *QueryOptions `json:"options,omitempty"`
}

// QueryMetadata is the metadata section of a query response.
type QueryMetadata struct {
	TotalRecords int `json:"totalRecords"`
	NumRecords   int `json:"numRecords"`
	NumFields    int `json:"numFields"`
	Skip         int `json:"skip"`
	Top          int `json:"top,omitempty"`
}

// QueryResult wraps one query response together with the table it came
// from. It is a read-only view: record parsing, the field map, and
// flattening are computed on demand from the raw payload.
type QueryResult struct {
	TableID  string            `json:"-"`
	Data     []json.RawMessage `json:"data"`
	Fields   []Field           `json:"fields"`
	Metadata QueryMetadata     `json:"metadata"`
}

// NumRecords returns the number of records in this response page.
func (r *QueryResult) NumRecords() int {
	if r.Metadata.NumRecords > 0 {
		return r.Metadata.NumRecords
	}

	return len(r.Data)
}

// FieldMap returns the id→label mapping derived from the response's
// field descriptors.
func (r *QueryResult) FieldMap() map[string]string {
	return FieldMap(r.Fields)
}

// Records parses the data section into wire records.
func (r *QueryResult) Records() ([]WireRecord, error) {
	return ParseWireRecords(r.Data)
}

// FlatRecords parses and flattens every record in the response, keyed
// by field label when useLabels is true and by raw field id otherwise.
func (r *QueryResult) FlatRecords(useLabels bool) ([]FlatRecord, error) {
	records, err := r.Records()
	if err != nil {
		return nil, err
	}

	fieldMap := r.FieldMap()

	flat := make([]FlatRecord, 0, len(records))
	for _, record := range records {
		flat = append(flat, Flatten(record, useLabels, fieldMap))
	}

	return flat, nil
}

// UpsertRequest is the body of a records upsert. MergeFieldID, when
// non-zero, selects the field the API uses to match existing records.
type UpsertRequest struct {
	To           string       `json:"to"`
	Data         []WireRecord `json:"data"`
	MergeFieldID int          `json:"mergeFieldId,omitempty"`
}

// UpsertMetadata is the metadata section of an upsert response.
type UpsertMetadata struct {
	CreatedRecordIDs              []int               `json:"createdRecordIds"`
	UnchangedRecordIDs            []int               `json:"unchangedRecordIds"`
	UpdatedRecordIDs              []int               `json:"updatedRecordIds"`
	LineErrors                    map[string][]string `json:"lineErrors,omitempty"`
	TotalNumberOfRecordsProcessed int                 `json:"totalNumberOfRecordsProcessed"`
}

// UpsertResult wraps one upsert response. Immutable after construction.
type UpsertResult struct {
	Data     []json.RawMessage `json:"data"`
	Metadata UpsertMetadata    `json:"metadata"`
}

// HasErrors reports whether the API returned any per-line errors.
func (r *UpsertResult) HasErrors() bool {
	return len(r.Metadata.LineErrors) > 0
}

// WasSuccessful reports whether the upsert completed without per-line
// errors.
func (r *UpsertResult) WasSuccessful() bool {
	return !r.HasErrors()
}

// CreatedCount returns the number of records created.
func (r *UpsertResult) CreatedCount() int {
	return len(r.Metadata.CreatedRecordIDs)
}

// UpdatedCount returns the number of records updated.
func (r *UpsertResult) UpdatedCount() int {
	return len(r.Metadata.UpdatedRecordIDs)
}

// TotalProcessed returns the total number of records the API processed,
// including failed lines.
func (r *UpsertResult) TotalProcessed() int {
	return r.Metadata.TotalNumberOfRecordsProcessed
}

// AffectedRecordIDs returns the created record ids followed by the
// updated record ids, in API order.
func (r *UpsertResult) AffectedRecordIDs() []int {
	affected := make([]int, 0, len(r.Metadata.CreatedRecordIDs)+len(r.Metadata.UpdatedRecordIDs))
	affected = append(affected, r.Metadata.CreatedRecordIDs...)
	affected = append(affected, r.Metadata.UpdatedRecordIDs...)

	return affected
}

// DeleteRequest is the body of a records delete.
type DeleteRequest struct {
	From  string `json:"from"`
	Where string `json:"where"`
}

// DeleteResult wraps a records delete response.
type DeleteResult struct {
	NumberDeleted int `json:"numberDeleted"`
}

// Table describes a table's metadata.
type Table struct {
	ID               string `json:"id"                         yaml:"id"`
	Name             string `json:"name"                       yaml:"name"`
	Description      string `json:"description,omitempty"      yaml:"description,omitempty"`
	Alias            string `json:"alias,omitempty"            yaml:"alias,omitempty"`
	SingleRecordName string `json:"singleRecordName,omitempty" yaml:"singleRecordName,omitempty"`
	PluralRecordName string `json:"pluralRecordName,omitempty" yaml:"pluralRecordName,omitempty"`
}

// UserInfo is the profile returned by the legacy user-info endpoint.
type UserInfo struct {
	ID           string `json:"id"                   yaml:"id"`
	FirstName    string `json:"firstName"            yaml:"firstName"`
	LastName     string `json:"lastName"             yaml:"lastName"`
	Login        string `json:"login"                yaml:"login"`
	Email        string `json:"email"                yaml:"email"`
	ScreenName   string `json:"screenName,omitempty" yaml:"screenName,omitempty"`
	IsVerified   bool   `json:"isVerified"           yaml:"isVerified"`
	ExternalAuth bool   `json:"externalAuth"         yaml:"externalAuth"`
}
