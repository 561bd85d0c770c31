// Package patient extracts and exports patient identifiers qualified by their
// assigning authority.
package patient

import (
	"strings"

	"github.com/caio-sobreiro/mwlmerge/dicom"
	mwlerrors "github.com/caio-sobreiro/mwlmerge/errors"
)

// Issuer identifies the assigning authority of a patient ID
type Issuer struct {
	LocalNamespaceEntityID string
	UniversalEntityID      string
	UniversalEntityIDType  string
}

// IsZero reports whether no part of the issuer is set
func (i Issuer) IsZero() bool {
	return i == Issuer{}
}

// String formats the issuer as an HL7 HD component: ns&uid&type
func (i Issuer) String() string {
	if i.UniversalEntityID == "" {
		return i.LocalNamespaceEntityID
	}
	return i.LocalNamespaceEntityID + "&" + i.UniversalEntityID + "&" + i.UniversalEntityIDType
}

// IDWithIssuer is a patient ID together with its issuer. Values are compared
// with ==.
type IDWithIssuer struct {
	ID     string
	Issuer Issuer
}

// String formats the identifier as an HL7 CX value: id^^^issuer
func (p IDWithIssuer) String() string {
	if p.Issuer.IsZero() {
		return p.ID
	}
	return p.ID + "^^^" + p.Issuer.String()
}

// PIDOf extracts the patient ID and its issuer from an attribute set.
//
// It returns nil without error when the attribute set carries no Patient ID.
// A multi-valued or non-text Patient ID or Issuer of Patient ID, and a
// Universal Entity ID without its type, are reported as an ExtractionError
// wrapping ErrMalformedPatientID.
func PIDOf(attrs *dicom.Dataset) (*IDWithIssuer, error) {
	id, err := singleValue(attrs, dicom.PatientID)
	if err != nil || id == "" {
		return nil, err
	}

	namespace, err := singleValue(attrs, dicom.IssuerOfPatientID)
	if err != nil {
		return nil, err
	}

	pid := &IDWithIssuer{ID: id}
	pid.Issuer.LocalNamespaceEntityID = namespace

	if qualifiers := attrs.GetNestedDataset(dicom.IssuerOfPatientIDQualifiersSequence); qualifiers != nil {
		uid, _ := qualifiers.GetString(dicom.UniversalEntityID)
		uidType, _ := qualifiers.GetString(dicom.UniversalEntityIDType)
		if uid != "" && uidType == "" {
			return nil, mwlerrors.NewExtractionError(dicom.UniversalEntityIDType,
				mwlerrors.ErrMalformedPatientID, "universal entity ID "+uid+" without type")
		}
		pid.Issuer.UniversalEntityID = uid
		if uid != "" {
			pid.Issuer.UniversalEntityIDType = uidType
		}
	}
	return pid, nil
}

func singleValue(attrs *dicom.Dataset, t dicom.Tag) (string, error) {
	values, err := attrs.Strings(t)
	if err != nil {
		return "", mwlerrors.NewExtractionError(t, mwlerrors.ErrMalformedPatientID, err.Error())
	}
	switch len(values) {
	case 0:
		return "", nil
	case 1:
		return values[0], nil
	default:
		return "", mwlerrors.NewExtractionError(t, mwlerrors.ErrMalformedPatientID,
			"multiple values: "+strings.Join(values, "\\"))
	}
}

// ExportTo writes the patient ID and its issuer into keys
func (p *IDWithIssuer) ExportTo(keys *dicom.Dataset) *dicom.Dataset {
	keys.SetString(dicom.PatientID, dicom.VR_LO, p.ID)
	if p.Issuer.LocalNamespaceEntityID != "" {
		keys.SetString(dicom.IssuerOfPatientID, dicom.VR_LO, p.Issuer.LocalNamespaceEntityID)
	}
	if p.Issuer.UniversalEntityID != "" {
		qualifiers := keys.EnsureNestedDataset(dicom.IssuerOfPatientIDQualifiersSequence)
		qualifiers.SetString(dicom.UniversalEntityID, dicom.VR_UT, p.Issuer.UniversalEntityID)
		qualifiers.SetString(dicom.UniversalEntityIDType, dicom.VR_CS, p.Issuer.UniversalEntityIDType)
	}
	return keys
}
