// Package submission models a test-request form as extracted from a workbook.
package submission

import "encoding/json"

// FieldName is a logical field of the request form.
type FieldName string

const (
	FieldClient               FieldName = "client"
	FieldProject              FieldName = "project"
	FieldTestType             FieldName = "test_type"
	FieldRequester            FieldName = "requester"
	FieldProjectLead          FieldName = "project_lead"
	FieldApplicationType      FieldName = "application_type"
	FieldVersion              FieldName = "version"
	FieldReleaseFunctionality FieldName = "release_functionality"
	FieldChangeDetail         FieldName = "change_detail"
	FieldChangeJustification  FieldName = "change_justification"
)

// AllFields lists every field in form order.
func AllFields() []FieldName {
	return []FieldName{
		FieldClient, FieldProject, FieldTestType,
		FieldRequester, FieldProjectLead, FieldApplicationType, FieldVersion,
		FieldReleaseFunctionality, FieldChangeDetail, FieldChangeJustification,
	}
}

// MandatoryFields are the identifier-bearing fields.
func MandatoryFields() []FieldName {
	return []FieldName{FieldClient, FieldProject, FieldTestType}
}

// FieldMap holds the extracted text of every field. Absent fields read as "".
type FieldMap map[FieldName]string

// NewFieldMap returns a map with every known field present and empty.
func NewFieldMap() FieldMap {
	m := make(FieldMap, len(AllFields()))
	for _, f := range AllFields() {
		m[f] = ""
	}
	return m
}

func (m FieldMap) Get(f FieldName) string {
	return m[f]
}

// Clone returns an independent copy.
func (m FieldMap) Clone() FieldMap {
	out := make(FieldMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Canonical renders the map as JSON. encoding/json sorts map keys, so two
// extractions of the same workbook yield identical bytes.
func (m FieldMap) Canonical() []byte {
	b, _ := json.Marshal(map[FieldName]string(m))
	return b
}
