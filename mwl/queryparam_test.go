package mwl

import (
	"strings"
	"testing"

	"github.com/caio-sobreiro/mwlmerge/dicom"
)

func TestQueryParam_EqualAndHash(t *testing.T) {
	build := func(scp string, labels []string, statuses StatusSet, key MatchingKey, attrs *dicom.Dataset, tpl string) *QueryParam {
		t.Helper()
		p, err := ValueOf(scp, labels, statuses, key, attrs, tpl)
		if err != nil {
			t.Fatalf("ValueOf failed: %v", err)
		}
		return p
	}

	base := build("MWLSCP", []string{"L1"}, NewStatusSet(Scheduled), PatientIDAccessionNumber, complete.dataset(), "tpl")
	same := build("MWLSCP", []string{"L1"}, NewStatusSet(Scheduled), PatientIDAccessionNumber, complete.dataset(), "tpl")

	if !base.Equal(same) {
		t.Fatalf("expected %v to equal %v", base, same)
	}
	if base.Hash() != same.Hash() {
		t.Errorf("equal values hash differently: %d != %d", base.Hash(), same.Hash())
	}

	otherAccession := complete
	otherAccession.accession = "A2"

	tests := []struct {
		name  string
		other *QueryParam
	}{
		{"MWL SCP", build("OTHER", []string{"L1"}, NewStatusSet(Scheduled), PatientIDAccessionNumber, complete.dataset(), "tpl")},
		{"Labels", build("MWLSCP", []string{"L2"}, NewStatusSet(Scheduled), PatientIDAccessionNumber, complete.dataset(), "tpl")},
		{"Label count", build("MWLSCP", []string{"L1", "L2"}, NewStatusSet(Scheduled), PatientIDAccessionNumber, complete.dataset(), "tpl")},
		{"Statuses", build("MWLSCP", []string{"L1"}, NewStatusSet(Scheduled, Arrived), PatientIDAccessionNumber, complete.dataset(), "tpl")},
		{"Template", build("MWLSCP", []string{"L1"}, NewStatusSet(Scheduled), PatientIDAccessionNumber, complete.dataset(), "other")},
		{"Accession", build("MWLSCP", []string{"L1"}, NewStatusSet(Scheduled), PatientIDAccessionNumber, otherAccession.dataset(), "tpl")},
		{"Key set", build("MWLSCP", []string{"L1"}, NewStatusSet(Scheduled), PatientIDOnly, complete.dataset(), "tpl")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if base.Equal(tt.other) {
				t.Errorf("expected %v to differ from %v", base, tt.other)
			}
			if tt.other.Equal(base) {
				t.Error("Equal should be symmetric")
			}
			if base.Hash() == tt.other.Hash() {
				t.Errorf("unexpected hash collision for %s", tt.name)
			}
		})
	}
}

func TestQueryParam_EqualNil(t *testing.T) {
	var a, b *QueryParam
	if !a.Equal(b) {
		t.Error("nil params should be equal")
	}
	p := mustValueOf(t, StudyInstanceUID, complete.dataset())
	if p.Equal(nil) || a.Equal(p) {
		t.Error("nil and non-nil params should differ")
	}
}

func TestQueryParam_AbsentDiffersFromEmpty(t *testing.T) {
	absent := mustValueOf(t, StudyInstanceUID, dicom.NewDataset())
	empty := mustValueOf(t, StudyInstanceUID, dicom.NewDataset())
	blank := ""
	empty.studyInstanceUID = &blank

	if absent.Equal(empty) {
		t.Error("absent key should not equal an empty key")
	}
	if absent.Hash() == empty.Hash() {
		t.Error("absent and empty keys should hash differently")
	}
}

func TestQueryParam_String(t *testing.T) {
	p, err := ValueOf("MWLSCP", []string{"CT"}, NewStatusSet(Scheduled), ScheduledProcedureStepID, complete.dataset(), "")
	if err != nil {
		t.Fatalf("ValueOf failed: %v", err)
	}

	s := p.String()
	for _, want := range []string{"mwlSCP=MWLSCP", "worklistLabels=[CT]", "statuses=[SCHEDULED]", "studyInstanceUID=1.2.3", "spsID=S1"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %s, missing %s", s, want)
		}
	}
	if strings.Contains(s, "accessionNumber") || strings.Contains(s, "patientID") {
		t.Errorf("String() = %s, should omit absent keys", s)
	}
}
