package dicom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	mwlerrors "github.com/caio-sobreiro/mwlmerge/errors"
)

// jsonElement is one attribute of the DICOM JSON model (PS3.18 F.2)
type jsonElement struct {
	VR    string            `json:"vr"`
	Value []json.RawMessage `json:"Value,omitempty"`
}

type personName struct {
	Alphabetic string `json:"Alphabetic,omitempty"`
}

// isNumericVR reports VRs whose JSON values are numbers rather than strings
func isNumericVR(vr string) bool {
	switch vr {
	case VR_DS, VR_IS, VR_FL, VR_FD, VR_SL, VR_SS, VR_SV, VR_UL, VR_US, VR_UV:
		return true
	}
	return false
}

// MarshalJSON encodes the dataset in the DICOM JSON model. Attributes are
// written in ascending tag order so equal datasets encode to identical bytes.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range d.Tags() {
		element := d.Elements[t]
		values, err := encodeJSONValues(element)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", t, err)
		}
		encoded, err := json.Marshal(jsonElement{VR: element.VR, Value: values})
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "\"%04X%04X\":", t.Group, t.Element)
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSONValues(element *Element) ([]json.RawMessage, error) {
	var texts []string
	switch v := element.Value.(type) {
	case nil:
		return nil, nil
	case []*Dataset:
		values := make([]json.RawMessage, 0, len(v))
		for _, item := range v {
			encoded, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			values = append(values, encoded)
		}
		return values, nil
	case string:
		if v == "" {
			return nil, nil
		}
		texts = strings.Split(strings.TrimRight(v, "\x00"), "\\")
	case []string:
		texts = v
	case int:
		texts = []string{strconv.Itoa(v)}
	default:
		texts = []string{fmt.Sprintf("%v", v)}
	}

	values := make([]json.RawMessage, 0, len(texts))
	for _, text := range texts {
		var (
			encoded []byte
			err     error
		)
		switch {
		case element.VR == VR_PN:
			encoded, err = json.Marshal(personName{Alphabetic: text})
		case isNumericVR(element.VR):
			encoded, err = encodeJSONNumber(text)
		default:
			encoded, err = json.Marshal(text)
		}
		if err != nil {
			return nil, err
		}
		values = append(values, encoded)
	}
	return values, nil
}

// encodeJSONNumber writes IS/DS text as a JSON number. DICOM allows forms such
// as "+5" or "007" that JSON does not, so those are normalised. Text that is
// not a finite number stays a string.
func encodeJSONNumber(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(text)
	}
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// UnmarshalJSON decodes a dataset from the DICOM JSON model. Text values are
// stored as a single string, or []string when multi-valued; BulkDataURI and
// InlineBinary attributes are kept as zero-length elements.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var raw map[string]jsonElement
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", mwlerrors.ErrInvalidJSON, err)
	}

	d.Elements = make(map[Tag]*Element, len(raw))
	for key, element := range raw {
		t, err := parseJSONTag(key)
		if err != nil {
			return err
		}
		vr := element.VR
		if vr == "" {
			vr = VROf(t)
		}
		value, err := decodeJSONValues(vr, element.Value)
		if err != nil {
			return fmt.Errorf("%w: attribute %s: %v", mwlerrors.ErrInvalidJSON, key, err)
		}
		d.AddElement(t, vr, value)
	}
	return nil
}

// ParseJSON decodes a DICOM JSON object into a new dataset
func ParseJSON(data []byte) (*Dataset, error) {
	dataset := NewDataset()
	if err := dataset.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return dataset, nil
}

func parseJSONTag(key string) (Tag, error) {
	if len(key) != 8 {
		return Tag{}, fmt.Errorf("%w: invalid attribute tag %q", mwlerrors.ErrInvalidJSON, key)
	}
	n, err := strconv.ParseUint(key, 16, 32)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: invalid attribute tag %q", mwlerrors.ErrInvalidJSON, key)
	}
	return Tag{Group: uint16(n >> 16), Element: uint16(n)}, nil
}

func decodeJSONValues(vr string, raw []json.RawMessage) (interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	if vr == VR_SQ {
		items := make([]*Dataset, 0, len(raw))
		for _, r := range raw {
			item := NewDataset()
			if err := item.UnmarshalJSON(r); err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}

	texts := make([]string, 0, len(raw))
	for _, r := range raw {
		text, err := decodeJSONText(vr, r)
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	if len(texts) == 1 {
		return texts[0], nil
	}
	return texts, nil
}

func decodeJSONText(vr string, r json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(r)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return "", nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		err := json.Unmarshal(trimmed, &s)
		return s, err
	case len(trimmed) > 0 && trimmed[0] == '{' && vr == VR_PN:
		var pn personName
		err := json.Unmarshal(trimmed, &pn)
		return pn.Alphabetic, err
	case len(trimmed) > 0 && (trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9')):
		return string(trimmed), nil
	default:
		return "", fmt.Errorf("unsupported value %s", trimmed)
	}
}
