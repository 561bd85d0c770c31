package mwl

import (
	"fmt"
	"hash/fnv"
	"slices"
	"strings"

	"github.com/caio-sobreiro/mwlmerge/patient"
)

// QueryParam holds the matching keys selected for one received attribute set,
// together with the worklist source and filters it is queried with.
//
// Only the keys picked by the resolved MatchingKey are present; the others
// report ok=false from their accessors. A QueryParam is never modified after
// ValueOf returns it.
type QueryParam struct {
	mwlSCP         string
	worklistLabels []string
	statuses       StatusSet
	templateURI    string

	patientID        *patient.IDWithIssuer
	accessionNumber  *string
	studyInstanceUID *string
	spsID            *string
}

// MWLSCP returns the AE title or identifier of the worklist source
func (p *QueryParam) MWLSCP() string { return p.mwlSCP }

// WorklistLabels returns a copy of the local worklist labels
func (p *QueryParam) WorklistLabels() []string { return slices.Clone(p.worklistLabels) }

// Statuses returns the SPS statuses of local worklist entries eligible for merging
func (p *QueryParam) Statuses() StatusSet { return p.statuses }

// TemplateURI returns the URI of the C-FIND identifier template
func (p *QueryParam) TemplateURI() string { return p.templateURI }

// PatientIDWithIssuer returns the patient identifier matching key
func (p *QueryParam) PatientIDWithIssuer() (patient.IDWithIssuer, bool) {
	if p.patientID == nil {
		return patient.IDWithIssuer{}, false
	}
	return *p.patientID, true
}

// AccessionNumber returns the accession number matching key
func (p *QueryParam) AccessionNumber() (string, bool) { return deref(p.accessionNumber) }

// StudyInstanceUID returns the study instance UID matching key
func (p *QueryParam) StudyInstanceUID() (string, bool) { return deref(p.studyInstanceUID) }

// SPSID returns the scheduled procedure step ID matching key
func (p *QueryParam) SPSID() (string, bool) { return deref(p.spsID) }

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// Equal reports whether both parameters hold the same keys and context
func (p *QueryParam) Equal(other *QueryParam) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.mwlSCP == other.mwlSCP &&
		slices.Equal(p.worklistLabels, other.worklistLabels) &&
		p.statuses == other.statuses &&
		p.templateURI == other.templateURI &&
		equalPtr(p.patientID, other.patientID) &&
		equalPtr(p.accessionNumber, other.accessionNumber) &&
		equalPtr(p.studyInstanceUID, other.studyInstanceUID) &&
		equalPtr(p.spsID, other.spsID)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Hash returns a hash consistent with Equal
func (p *QueryParam) Hash() uint64 {
	if p == nil {
		return 0
	}
	h := fnv.New64a()
	field := func(s string, present bool) {
		if present {
			h.Write([]byte{1})
			h.Write([]byte(s))
		} else {
			h.Write([]byte{0})
		}
		h.Write([]byte{0xff})
	}

	field(p.mwlSCP, true)
	field(fmt.Sprint(len(p.worklistLabels)), true)
	for _, label := range p.worklistLabels {
		field(label, true)
	}
	field(fmt.Sprint(uint16(p.statuses)), true)
	field(p.templateURI, true)
	if p.patientID != nil {
		field(p.patientID.ID, true)
		field(p.patientID.Issuer.LocalNamespaceEntityID, true)
		field(p.patientID.Issuer.UniversalEntityID, true)
		field(p.patientID.Issuer.UniversalEntityIDType, true)
	} else {
		field("", false)
	}
	field(deref(p.accessionNumber))
	field(deref(p.studyInstanceUID))
	field(deref(p.spsID))
	return h.Sum64()
}

func (p *QueryParam) String() string {
	if p == nil {
		return "QueryParam(nil)"
	}
	var sb strings.Builder
	sb.WriteString("QueryParam{mwlSCP=")
	sb.WriteString(p.mwlSCP)
	fmt.Fprintf(&sb, ", worklistLabels=%v, statuses=%s", p.worklistLabels, p.statuses)
	if p.patientID != nil {
		fmt.Fprintf(&sb, ", patientID=%s", p.patientID)
	}
	if p.accessionNumber != nil {
		fmt.Fprintf(&sb, ", accessionNumber=%s", *p.accessionNumber)
	}
	if p.studyInstanceUID != nil {
		fmt.Fprintf(&sb, ", studyInstanceUID=%s", *p.studyInstanceUID)
	}
	if p.spsID != nil {
		fmt.Fprintf(&sb, ", spsID=%s", *p.spsID)
	}
	sb.WriteString("}")
	return sb.String()
}
