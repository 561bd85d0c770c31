// Package mwl derives the matching keys used to find the Modality Worklist
// entry that newly received procedure data should be merged into, and builds
// the C-FIND identifier from them.
package mwl

import (
	"strconv"
	"strings"

	mwlerrors "github.com/caio-sobreiro/mwlmerge/errors"
)

// MatchingKey selects which identifying attributes are used to query the
// worklist.
type MatchingKey int

const (
	// PatientID resolves to PatientIDAccessionNumber when the received
	// attributes carry an accession number, PatientIDOnly otherwise
	PatientID MatchingKey = iota
	PatientIDOnly
	PatientIDAccessionNumber
	AccessionNumber
	ScheduledProcedureStepID
	StudyInstanceUID
)

var matchingKeyNames = [...]string{
	PatientID:                "PatientID",
	PatientIDOnly:            "PatientIDOnly",
	PatientIDAccessionNumber: "PatientIDAccessionNumber",
	AccessionNumber:          "AccessionNumber",
	ScheduledProcedureStepID: "ScheduledProcedureStepID",
	StudyInstanceUID:         "StudyInstanceUID",
}

// aliases accepted by ParseMatchingKey in addition to the canonical names
var matchingKeyAliases = map[string]MatchingKey{
	"patientidandaccessionnumber": PatientIDAccessionNumber,
	"scheduledstepid":             ScheduledProcedureStepID,
	"spsid":                       ScheduledProcedureStepID,
	"studyiuid":                   StudyInstanceUID,
}

// MatchingKeys lists every matching key in declaration order
func MatchingKeys() []MatchingKey {
	return []MatchingKey{
		PatientID,
		PatientIDOnly,
		PatientIDAccessionNumber,
		AccessionNumber,
		ScheduledProcedureStepID,
		StudyInstanceUID,
	}
}

func (k MatchingKey) valid() bool {
	return k >= PatientID && k <= StudyInstanceUID
}

func (k MatchingKey) String() string {
	if !k.valid() {
		return "MatchingKey(" + strconv.Itoa(int(k)) + ")"
	}
	return matchingKeyNames[k]
}

// UsesPatientID reports whether queries built with this key filter on the
// patient identifier
func (k MatchingKey) UsesPatientID() bool {
	return k == PatientID || k == PatientIDOnly || k == PatientIDAccessionNumber
}

// ParseMatchingKey parses a matching key name, ignoring case
func ParseMatchingKey(s string) (MatchingKey, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range matchingKeyNames {
		if strings.ToLower(n) == name {
			return MatchingKey(k), nil
		}
	}
	if k, ok := matchingKeyAliases[name]; ok {
		return k, nil
	}
	return 0, mwlerrors.NewParseError("matching key", s, mwlerrors.ErrUnknownMatchingKey)
}

// MarshalText implements encoding.TextMarshaler
func (k MatchingKey) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, mwlerrors.NewParseError("matching key", k.String(), mwlerrors.ErrUnknownMatchingKey)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *MatchingKey) UnmarshalText(text []byte) error {
	parsed, err := ParseMatchingKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
