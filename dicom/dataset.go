package dicom

import (
	"sort"
	"strings"

	"github.com/suyashkumar/dicom/pkg/tag"

	mwlerrors "github.com/caio-sobreiro/mwlmerge/errors"
)

// VR (Value Representation) constants
const (
	VR_AE = "AE" // Application Entity
	VR_AS = "AS" // Age String
	VR_CS = "CS" // Code String
	VR_DA = "DA" // Date
	VR_DS = "DS" // Decimal String
	VR_DT = "DT" // Date Time
	VR_FL = "FL" // Floating Point Single
	VR_FD = "FD" // Floating Point Double
	VR_IS = "IS" // Integer String
	VR_LO = "LO" // Long String
	VR_LT = "LT" // Long Text
	VR_PN = "PN" // Person Name
	VR_SH = "SH" // Short String
	VR_SL = "SL" // Signed Long
	VR_SQ = "SQ" // Sequence of Items
	VR_SS = "SS" // Signed Short
	VR_ST = "ST" // Short Text
	VR_SV = "SV" // Signed Very Long
	VR_TM = "TM" // Time
	VR_UC = "UC" // Unlimited Characters
	VR_UI = "UI" // Unique Identifier
	VR_UL = "UL" // Unsigned Long
	VR_UN = "UN" // Unknown
	VR_UR = "UR" // Universal Resource
	VR_US = "US" // Unsigned Short
	VR_UT = "UT" // Unlimited Text
	VR_UV = "UV" // Unsigned Very Long
)

// Tag represents a DICOM tag (group, element)
type Tag = tag.Tag

// Element represents a DICOM data element.
//
// Value holds a string (backslash separated when multi-valued), a []string,
// a []*Dataset for sequences, or nil for a zero-length element.
type Element struct {
	Tag   Tag
	VR    string
	Value interface{}
}

// Dataset represents a collection of DICOM elements
type Dataset struct {
	Elements map[Tag]*Element
}

// NewDataset creates a new empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Elements: make(map[Tag]*Element),
	}
}

// AddElement adds an element to the dataset, replacing any previous element
// with the same tag
func (d *Dataset) AddElement(tag Tag, vr string, value interface{}) {
	element := &Element{
		Tag:   tag,
		VR:    vr,
		Value: value,
	}
	d.Elements[tag] = element
}

// GetElement returns an element by tag
func (d *Dataset) GetElement(tag Tag) (*Element, bool) {
	if d == nil {
		return nil, false
	}
	element, exists := d.Elements[tag]
	return element, exists
}

// Contains reports whether an element with the tag is present, even if it
// has no value
func (d *Dataset) Contains(tag Tag) bool {
	_, exists := d.GetElement(tag)
	return exists
}

// ContainsValue reports whether the tag is present and carries a non-empty value
func (d *Dataset) ContainsValue(tag Tag) bool {
	element, exists := d.GetElement(tag)
	if !exists {
		return false
	}
	switch v := element.Value.(type) {
	case nil:
		return false
	case string:
		return strings.Trim(v, " \\\x00") != ""
	case []string:
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				return true
			}
		}
		return false
	case []*Dataset:
		return len(v) > 0
	default:
		return true
	}
}

// GetString returns the first value of a string element. ok is false when the
// element is absent, empty or not a string.
func (d *Dataset) GetString(tag Tag) (value string, ok bool) {
	element, exists := d.GetElement(tag)
	if !exists {
		return "", false
	}
	switch v := element.Value.(type) {
	case string:
		first, _, _ := strings.Cut(v, "\\")
		value = strings.TrimSpace(strings.TrimRight(first, "\x00"))
	case []string:
		if len(v) > 0 {
			value = strings.TrimSpace(v[0])
		}
	}
	return value, value != ""
}

// Strings returns every non-empty value of a string element. An absent or
// zero-length element yields nil. Elements holding something other than
// text are reported as an ExtractionError.
func (d *Dataset) Strings(tag Tag) ([]string, error) {
	element, exists := d.GetElement(tag)
	if !exists {
		return nil, nil
	}

	var parts []string
	switch v := element.Value.(type) {
	case nil:
		return nil, nil
	case string:
		// Split by backslash for multiple values
		parts = strings.Split(strings.TrimRight(v, "\x00"), "\\")
	case []string:
		parts = v
	default:
		return nil, mwlerrors.NewExtractionError(tag, mwlerrors.ErrMalformedElement, "value is not text")
	}

	var result []string
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			result = append(result, s)
		}
	}
	return result, nil
}

// SetString sets a single string value
func (d *Dataset) SetString(tag Tag, vr string, value string) {
	d.AddElement(tag, vr, value)
}

// SetNull sets a zero-length element, the DICOM way of requesting a return key
// in a C-FIND identifier
func (d *Dataset) SetNull(tag Tag, vr string) {
	d.AddElement(tag, vr, nil)
}

// SetNullIfAbsent adds a zero-length element for every tag not yet present.
// Existing elements are left untouched.
func (d *Dataset) SetNullIfAbsent(tags ...Tag) {
	for _, t := range tags {
		if !d.Contains(t) {
			d.SetNull(t, VROf(t))
		}
	}
}

// GetNestedDataset returns the first item of a sequence, or nil when the
// sequence is absent or empty
func (d *Dataset) GetNestedDataset(tag Tag) *Dataset {
	element, exists := d.GetElement(tag)
	if !exists {
		return nil
	}
	if items, ok := element.Value.([]*Dataset); ok && len(items) > 0 {
		return items[0]
	}
	return nil
}

// EnsureNestedDataset returns the first item of a sequence, creating the
// sequence and the item when needed
func (d *Dataset) EnsureNestedDataset(tag Tag) *Dataset {
	if item := d.GetNestedDataset(tag); item != nil {
		return item
	}
	item := NewDataset()
	d.AddElement(tag, VR_SQ, []*Dataset{item})
	return item
}

// Tags returns the tags of the dataset in ascending order
func (d *Dataset) Tags() []Tag {
	if d == nil {
		return nil
	}
	tags := make([]Tag, 0, len(d.Elements))
	for t := range d.Elements {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Group != tags[j].Group {
			return tags[i].Group < tags[j].Group
		}
		return tags[i].Element < tags[j].Element
	})
	return tags
}

// Len returns the number of elements at the top level of the dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Elements)
}

// Equal reports whether both datasets hold the same elements, comparing
// sequence items recursively
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d.Len() == 0 && other.Len() == 0
	}
	if d.Len() != other.Len() {
		return false
	}
	for t, a := range d.Elements {
		b, ok := other.Elements[t]
		if !ok || a.VR != b.VR || !valuesEqual(a.Value, b.Value) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []string:
		bv, ok := b.([]string)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case []*Dataset:
		bv, ok := b.([]*Dataset)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !av[i].Equal(bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// VROf looks up the VR of a tag in the DICOM data dictionary, falling back to
// UN for private or unknown tags
func VROf(t Tag) string {
	info, err := tag.Find(t)
	if err != nil {
		return VR_UN
	}
	// multi-VR entries read like "US or SS"
	vrs := strings.Fields(info.VR)
	if len(vrs) == 0 {
		return VR_UN
	}
	return vrs[0]
}
