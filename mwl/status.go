package mwl

import (
	"strings"

	mwlerrors "github.com/caio-sobreiro/mwlmerge/errors"
)

// SPSStatus is the Scheduled Procedure Step Status (0040,0020) of a worklist
// entry
type SPSStatus uint8

const (
	Scheduled SPSStatus = iota
	Arrived
	Ready
	Started
	Departed
	Canceled
	Discontinued
	Completed
)

var spsStatusNames = [...]string{
	Scheduled:    "SCHEDULED",
	Arrived:      "ARRIVED",
	Ready:        "READY",
	Started:      "STARTED",
	Departed:     "DEPARTED",
	Canceled:     "CANCELED",
	Discontinued: "DISCONTINUED",
	Completed:    "COMPLETED",
}

func (s SPSStatus) String() string {
	if int(s) >= len(spsStatusNames) {
		return "UNKNOWN"
	}
	return spsStatusNames[s]
}

// ParseSPSStatus parses a status code string such as "SCHEDULED", ignoring case
func ParseSPSStatus(s string) (SPSStatus, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range spsStatusNames {
		if name == code {
			return SPSStatus(i), nil
		}
	}
	return 0, mwlerrors.NewParseError("SPS status", s, mwlerrors.ErrUnknownSPSStatus)
}

// StatusSet is an immutable set of SPS statuses. The zero value is the empty set.
type StatusSet uint16

// NewStatusSet returns the set holding the given statuses
func NewStatusSet(statuses ...SPSStatus) StatusSet {
	var set StatusSet
	for _, s := range statuses {
		if int(s) < len(spsStatusNames) {
			set |= 1 << s
		}
	}
	return set
}

// ParseStatusSet parses a list of status codes
func ParseStatusSet(codes []string) (StatusSet, error) {
	var set StatusSet
	for _, code := range codes {
		if strings.TrimSpace(code) == "" {
			continue
		}
		s, err := ParseSPSStatus(code)
		if err != nil {
			return 0, err
		}
		set |= 1 << s
	}
	return set, nil
}

// Contains reports whether s is a member of the set
func (set StatusSet) Contains(s SPSStatus) bool {
	return int(s) < len(spsStatusNames) && set&(1<<s) != 0
}

// Len returns the number of statuses in the set
func (set StatusSet) Len() int {
	n := 0
	for i := range spsStatusNames {
		if set&(1<<i) != 0 {
			n++
		}
	}
	return n
}

// Values returns the members in declaration order
func (set StatusSet) Values() []SPSStatus {
	var values []SPSStatus
	for i := range spsStatusNames {
		if set&(1<<i) != 0 {
			values = append(values, SPSStatus(i))
		}
	}
	return values
}

func (set StatusSet) String() string {
	values := set.Values()
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}
