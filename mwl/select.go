package mwl

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/caio-sobreiro/mwlmerge/dicom"
	mwlerrors "github.com/caio-sobreiro/mwlmerge/errors"
	"github.com/caio-sobreiro/mwlmerge/patient"
)

// step reads one kind of matching key from the received attributes into p
type step struct {
	name  string
	apply func(attrs *dicom.Dataset, p *QueryParam) error
}

var (
	patientIDStep = step{"patient-id", func(attrs *dicom.Dataset, p *QueryParam) error {
		pid, err := patient.PIDOf(attrs)
		if err != nil {
			return err
		}
		p.patientID = pid
		return nil
	}}

	// The accession number wins; the study instance UID is only used in
	// its place, never in addition to it.
	accessionOrStudyStep = step{"accession-number-or-study", func(attrs *dicom.Dataset, p *QueryParam) error {
		if accession, ok := attrs.GetString(dicom.AccessionNumber); ok {
			p.accessionNumber = &accession
			return nil
		}
		return readStudyInstanceUID(attrs, p)
	}}

	spsIDStep = step{"sps-id", func(attrs *dicom.Dataset, p *QueryParam) error {
		request := attrs.GetNestedDataset(dicom.RequestAttributesSequence)
		if spsID, ok := request.GetString(dicom.ScheduledProcedureStepID); ok {
			p.spsID = &spsID
		}
		return nil
	}}

	studyInstanceUIDStep = step{"study-instance-uid", readStudyInstanceUID}
)

func readStudyInstanceUID(attrs *dicom.Dataset, p *QueryParam) error {
	if uid, ok := attrs.GetString(dicom.StudyInstanceUID); ok {
		p.studyInstanceUID = &uid
	}
	return nil
}

// cascade maps every concrete matching key to the steps it runs, in order.
// PatientIDAccessionNumber continues into the AccessionNumber step and
// ScheduledProcedureStepID continues into the StudyInstanceUID step whether
// or not a step ID was found.
var cascade = map[MatchingKey][]step{
	PatientIDOnly:            {patientIDStep},
	PatientIDAccessionNumber: {patientIDStep, accessionOrStudyStep},
	AccessionNumber:          {accessionOrStudyStep},
	ScheduledProcedureStepID: {spsIDStep, studyInstanceUIDStep},
	StudyInstanceUID:         {studyInstanceUIDStep},
}

// Resolve maps the PatientID meta key onto PatientIDAccessionNumber when attrs
// carries an accession number and onto PatientIDOnly otherwise. Every other
// key is returned unchanged.
func Resolve(key MatchingKey, attrs *dicom.Dataset) MatchingKey {
	if key != PatientID {
		return key
	}
	if attrs.ContainsValue(dicom.AccessionNumber) {
		return PatientIDAccessionNumber
	}
	return PatientIDOnly
}

// ValueOf selects the matching keys for attrs according to key.
//
// Attributes missing from attrs leave the corresponding key absent. Errors
// from extracting the patient identifier are returned unchanged.
func ValueOf(mwlSCP string, worklistLabels []string, statuses StatusSet,
	key MatchingKey, attrs *dicom.Dataset, templateURI string) (*QueryParam, error) {
	steps, ok := cascade[Resolve(key, attrs)]
	if !ok {
		return nil, mwlerrors.NewParseError("matching key", key.String(), mwlerrors.ErrUnknownMatchingKey)
	}

	p := &QueryParam{
		mwlSCP:         mwlSCP,
		worklistLabels: slices.Clone(worklistLabels),
		statuses:       statuses,
		templateURI:    templateURI,
	}
	for _, s := range steps {
		if err := s.apply(attrs, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Selector runs ValueOf and logs which keys were chosen
type Selector struct {
	logger zerolog.Logger
}

// NewSelector creates a selector logging to logger
func NewSelector(logger zerolog.Logger) *Selector {
	return &Selector{logger: logger}
}

// Select is ValueOf with logging
func (s *Selector) Select(mwlSCP string, worklistLabels []string, statuses StatusSet,
	key MatchingKey, attrs *dicom.Dataset, templateURI string) (*QueryParam, error) {
	resolved := Resolve(key, attrs)
	p, err := ValueOf(mwlSCP, worklistLabels, statuses, resolved, attrs, templateURI)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("mwl_scp", mwlSCP).
			Stringer("matching_key", key).
			Msg("failed to select MWL matching keys")
		return nil, err
	}

	evt := s.logger.Debug().
		Str("mwl_scp", mwlSCP).
		Stringer("matching_key", key).
		Stringer("resolved_key", resolved).
		Bool("patient_id_key", resolved.UsesPatientID())
	if pid, ok := p.PatientIDWithIssuer(); ok {
		evt = evt.Stringer("patient_id", pid)
	}
	if v, ok := p.AccessionNumber(); ok {
		evt = evt.Str("accession_number", v)
	}
	if v, ok := p.StudyInstanceUID(); ok {
		evt = evt.Str("study_instance_uid", v)
	}
	if v, ok := p.SPSID(); ok {
		evt = evt.Str("sps_id", v)
	}
	evt.Msg("selected MWL matching keys")
	return p, nil
}
