package dicom

import (
	"errors"
	"testing"

	mwlerrors "github.com/caio-sobreiro/mwlmerge/errors"
)

func TestNewDataset(t *testing.T) {
	ds := NewDataset()
	if ds == nil {
		t.Fatal("NewDataset returned nil")
	}
	if ds.Elements == nil {
		t.Error("Elements map is nil")
	}
	if ds.Len() != 0 {
		t.Errorf("Expected empty dataset, got %d elements", ds.Len())
	}
}

func TestDataset_AddElement(t *testing.T) {
	ds := NewDataset()

	tag := Tag{Group: 0x0010, Element: 0x0010}
	vr := VR_PN
	value := "DOE^JOHN"

	ds.AddElement(tag, vr, value)

	element, exists := ds.GetElement(tag)
	if !exists {
		t.Fatal("Element not found after adding")
	}

	if element.Tag != tag {
		t.Errorf("Tag mismatch: expected %v, got %v", tag, element.Tag)
	}
	if element.VR != vr {
		t.Errorf("VR mismatch: expected %s, got %s", vr, element.VR)
	}
	if element.Value != value {
		t.Errorf("Value mismatch: expected %s, got %v", value, element.Value)
	}
}

func TestDataset_NilReceiver(t *testing.T) {
	var ds *Dataset

	if ds.Contains(AccessionNumber) {
		t.Error("nil dataset should not contain elements")
	}
	if _, ok := ds.GetString(AccessionNumber); ok {
		t.Error("nil dataset should not return values")
	}
	if ds.GetNestedDataset(RequestAttributesSequence) != nil {
		t.Error("nil dataset should not return nested items")
	}
	if ds.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ds.Len())
	}
}

func TestDataset_GetString(t *testing.T) {
	tests := []struct {
		name       string
		value      interface{}
		present    bool
		expected   string
		expectedOK bool
	}{
		{"String value", "ACC1", true, "ACC1", true},
		{"String with spaces", "  12345  ", true, "12345", true},
		{"Multi-valued string", "A1\\A2", true, "A1", true},
		{"String slice", []string{"B1", "B2"}, true, "B1", true},
		{"Empty string", "", true, "", false},
		{"Blank string", "   ", true, "", false},
		{"Zero length element", nil, true, "", false},
		{"Non-string value", 123, true, "", false},
		{"Non-existing tag", nil, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewDataset()
			if tt.present {
				ds.AddElement(AccessionNumber, VR_SH, tt.value)
			}
			result, ok := ds.GetString(AccessionNumber)
			if result != tt.expected || ok != tt.expectedOK {
				t.Errorf("GetString() = (%q, %v), want (%q, %v)", result, ok, tt.expected, tt.expectedOK)
			}
		})
	}
}

func TestDataset_ContainsValue(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		present  bool
		contains bool
		hasValue bool
	}{
		{"Absent", nil, false, false, false},
		{"Zero length", nil, true, true, false},
		{"Empty string", "", true, true, false},
		{"Only delimiters", " \\ ", true, true, false},
		{"Value", "ACC1", true, true, true},
		{"Empty slice entries", []string{"", " "}, true, true, false},
		{"Slice with value", []string{"", "X"}, true, true, true},
		{"Empty sequence", []*Dataset{}, true, true, false},
		{"Sequence with item", []*Dataset{NewDataset()}, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewDataset()
			if tt.present {
				ds.AddElement(AccessionNumber, VR_SH, tt.value)
			}
			if got := ds.Contains(AccessionNumber); got != tt.contains {
				t.Errorf("Contains() = %v, want %v", got, tt.contains)
			}
			if got := ds.ContainsValue(AccessionNumber); got != tt.hasValue {
				t.Errorf("ContainsValue() = %v, want %v", got, tt.hasValue)
			}
		})
	}
}

func TestDataset_Strings(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected []string
		wantErr  bool
	}{
		{name: "Single value", value: "CT", expected: []string{"CT"}},
		{name: "Multiple values with backslash", value: "ORIGINAL\\PRIMARY\\AXIAL", expected: []string{"ORIGINAL", "PRIMARY", "AXIAL"}},
		{name: "String slice", value: []string{"value1", "value2"}, expected: []string{"value1", "value2"}},
		{name: "Empty components dropped", value: "A\\\\B\\", expected: []string{"A", "B"}},
		{name: "Zero length", value: nil, expected: nil},
		{name: "Non-string value", value: 123, wantErr: true},
		{name: "Sequence value", value: []*Dataset{NewDataset()}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewDataset()
			ds.AddElement(PatientID, VR_LO, tt.value)

			result, err := ds.Strings(PatientID)
			if tt.wantErr {
				if !errors.Is(err, mwlerrors.ErrMalformedElement) {
					t.Fatalf("expected ErrMalformedElement, got %v", err)
				}
				var extractErr *mwlerrors.ExtractionError
				if !errors.As(err, &extractErr) || extractErr.Tag != PatientID {
					t.Errorf("expected ExtractionError for %v, got %v", PatientID, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %d strings, got %d", len(tt.expected), len(result))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("String[%d]: expected %q, got %q", i, tt.expected[i], result[i])
				}
			}
		})
	}

	absent, err := NewDataset().Strings(PatientID)
	if err != nil || absent != nil {
		t.Errorf("absent element: got (%v, %v), want (nil, nil)", absent, err)
	}
}

func TestDataset_SetNullIfAbsent(t *testing.T) {
	ds := NewDataset()
	ds.SetString(ScheduledProcedureStepDescription, VR_LO, "CHEST PA")

	ds.SetNullIfAbsent(
		ScheduledPerformingPhysicianName,
		ScheduledProcedureStepDescription,
		ScheduledProtocolCodeSequence)

	if v, _ := ds.GetString(ScheduledProcedureStepDescription); v != "CHEST PA" {
		t.Errorf("existing value overwritten: got %q", v)
	}

	physician, ok := ds.GetElement(ScheduledPerformingPhysicianName)
	if !ok {
		t.Fatal("ScheduledPerformingPhysicianName not added")
	}
	if physician.Value != nil {
		t.Errorf("expected zero-length value, got %v", physician.Value)
	}
	if physician.VR != VR_PN {
		t.Errorf("VR = %s, want %s", physician.VR, VR_PN)
	}

	protocol, ok := ds.GetElement(ScheduledProtocolCodeSequence)
	if !ok {
		t.Fatal("ScheduledProtocolCodeSequence not added")
	}
	if protocol.VR != VR_SQ {
		t.Errorf("VR = %s, want %s", protocol.VR, VR_SQ)
	}
}

func TestDataset_NestedDataset(t *testing.T) {
	ds := NewDataset()

	if ds.GetNestedDataset(ScheduledProcedureStepSequence) != nil {
		t.Fatal("expected no nested dataset before creation")
	}

	item := ds.EnsureNestedDataset(ScheduledProcedureStepSequence)
	if item == nil {
		t.Fatal("EnsureNestedDataset returned nil")
	}
	item.SetString(ScheduledProcedureStepID, VR_SH, "SPS1")

	again := ds.EnsureNestedDataset(ScheduledProcedureStepSequence)
	if again != item {
		t.Error("EnsureNestedDataset should return the existing item")
	}
	if v, _ := ds.GetNestedDataset(ScheduledProcedureStepSequence).GetString(ScheduledProcedureStepID); v != "SPS1" {
		t.Errorf("nested value = %q, want SPS1", v)
	}

	element, _ := ds.GetElement(ScheduledProcedureStepSequence)
	if element.VR != VR_SQ {
		t.Errorf("VR = %s, want %s", element.VR, VR_SQ)
	}
}

func TestDataset_EnsureNestedDatasetReplacesEmptySequence(t *testing.T) {
	ds := NewDataset()
	ds.SetNull(ScheduledProcedureStepSequence, VR_SQ)

	item := ds.EnsureNestedDataset(ScheduledProcedureStepSequence)
	if item == nil || ds.GetNestedDataset(ScheduledProcedureStepSequence) != item {
		t.Error("expected empty sequence to receive a new item")
	}
}

func TestDataset_Tags(t *testing.T) {
	ds := NewDataset()
	ds.SetString(StudyInstanceUID, VR_UI, "1.2.3")
	ds.SetString(PatientID, VR_LO, "P1")
	ds.SetString(AccessionNumber, VR_SH, "A1")
	ds.SetString(PatientName, VR_PN, "DOE^JOHN")

	want := []Tag{AccessionNumber, PatientName, PatientID, StudyInstanceUID}
	got := ds.Tags()
	if len(got) != len(want) {
		t.Fatalf("Tags() returned %d tags, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tags()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDataset_Equal(t *testing.T) {
	build := func(spsID string) *Dataset {
		ds := NewDataset()
		ds.SetString(AccessionNumber, VR_SH, "A1")
		ds.EnsureNestedDataset(ScheduledProcedureStepSequence).SetString(ScheduledProcedureStepID, VR_SH, spsID)
		return ds
	}

	if !build("S1").Equal(build("S1")) {
		t.Error("identical datasets should be equal")
	}
	if build("S1").Equal(build("S2")) {
		t.Error("datasets differing in a nested item should not be equal")
	}
	if build("S1").Equal(NewDataset()) {
		t.Error("datasets of different size should not be equal")
	}

	var empty *Dataset
	if !empty.Equal(NewDataset()) {
		t.Error("nil dataset should equal an empty dataset")
	}
}

func TestVROf(t *testing.T) {
	tests := []struct {
		name     string
		tag      Tag
		expected string
	}{
		{"Accession Number", AccessionNumber, VR_SH},
		{"Study Instance UID", StudyInstanceUID, VR_UI},
		{"Patient ID", PatientID, VR_LO},
		{"Scheduled Procedure Step Sequence", ScheduledProcedureStepSequence, VR_SQ},
		{"Private tag", Tag{Group: 0x0009, Element: 0x1001}, VR_UN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VROf(tt.tag); got != tt.expected {
				t.Errorf("VROf(%v) = %s, want %s", tt.tag, got, tt.expected)
			}
		})
	}
}
