package dicom

import "github.com/suyashkumar/dicom/pkg/tag"

// Attributes consulted when matching and querying worklist entries
var (
	AccessionNumber                     = tag.AccessionNumber
	PatientName                         = tag.PatientName
	PatientID                           = tag.PatientID
	IssuerOfPatientID                   = tag.IssuerOfPatientID
	IssuerOfPatientIDQualifiersSequence = tag.IssuerOfPatientIDQualifiersSequence
	UniversalEntityID                   = tag.UniversalEntityID
	UniversalEntityIDType               = tag.UniversalEntityIDType
	StudyInstanceUID                    = tag.StudyInstanceUID
	RequestAttributesSequence           = tag.RequestAttributesSequence
	RequestedProcedureID                = tag.RequestedProcedureID
	ScheduledProcedureStepSequence      = tag.ScheduledProcedureStepSequence
	ScheduledProcedureStepID            = tag.ScheduledProcedureStepID
	ScheduledProcedureStepDescription   = tag.ScheduledProcedureStepDescription
	ScheduledPerformingPhysicianName    = tag.ScheduledPerformingPhysicianName
	ScheduledProtocolCodeSequence       = tag.ScheduledProtocolCodeSequence
)
