package mwl

import "github.com/caio-sobreiro/mwlmerge/dicom"

// SetMatchingKeys writes the present matching keys into keys, the identifier
// of a Modality Worklist C-FIND request, and returns keys.
//
// Attributes already in keys that are not matching keys are kept. When an
// SPS ID is present it is placed in the first Scheduled Procedure Step
// Sequence item, which is created if needed and given zero-length return
// keys for the performing physician, step description and protocol code
// unless those are already there.
func (p *QueryParam) SetMatchingKeys(keys *dicom.Dataset) *dicom.Dataset {
	if p.patientID != nil {
		p.patientID.ExportTo(keys)
	}
	if p.accessionNumber != nil {
		keys.SetString(dicom.AccessionNumber, dicom.VR_SH, *p.accessionNumber)
	}
	if p.studyInstanceUID != nil {
		keys.SetString(dicom.StudyInstanceUID, dicom.VR_UI, *p.studyInstanceUID)
	}
	if p.spsID != nil {
		sps := keys.EnsureNestedDataset(dicom.ScheduledProcedureStepSequence)
		sps.SetNullIfAbsent(
			dicom.ScheduledPerformingPhysicianName,
			dicom.ScheduledProcedureStepDescription,
			dicom.ScheduledProtocolCodeSequence)
		sps.SetString(dicom.ScheduledProcedureStepID, dicom.VR_SH, *p.spsID)
	}
	return keys
}

// NewQueryKeys returns a new identifier holding only the matching keys
func (p *QueryParam) NewQueryKeys() *dicom.Dataset {
	return p.SetMatchingKeys(dicom.NewDataset())
}
