package gist

import (
	"fmt"
	"sort"
	"strings"
)

// Datum is the closed enum of metadata keys §3/§4.2 define for Info.
// Declaration order is display order; Id is always first (§8).
type Datum int

const (
	Id Datum = iota
	Owner
	BrowserUrl
	RawUrl
	Language
	Description
	CreatedAt
	UpdatedAt
)

var datumNames = map[Datum]string{
	Id:          "Id",
	Owner:       "Owner",
	BrowserUrl:  "BrowserUrl",
	RawUrl:      "RawUrl",
	Language:    "Language",
	Description: "Description",
	CreatedAt:   "CreatedAt",
	UpdatedAt:   "UpdatedAt",
}

// defaultDisplay is shown for an absent datum (§3: "every datum has a
// well-known default display string for absent values").
var defaultDisplay = map[Datum]string{
	Id:          "(none)",
	Owner:       "(unknown)",
	BrowserUrl:  "(none)",
	RawUrl:      "(none)",
	Language:    "(unknown)",
	Description: "(none)",
	CreatedAt:   "(unknown)",
	UpdatedAt:   "(unknown)",
}

// String renders the datum's declared name, e.g. "Id", "BrowserUrl".
func (d Datum) String() string {
	if n, ok := datumNames[d]; ok {
		return n
	}
	return fmt.Sprintf("Datum(%d)", int(d))
}

// orderedData lists every Datum in declaration order, used both for Info's
// sort order and for the round-trip invariant in §8 (CreatedAt/UpdatedAt
// sort last among declared variants).
var orderedData = []Datum{Id, Owner, BrowserUrl, RawUrl, Language, Description, CreatedAt, UpdatedAt}

func rank(d Datum) int {
	for i, x := range orderedData {
		if x == d {
			return i
		}
	}
	return len(orderedData)
}

// Info is an ordered map keyed by Datum, built with Set and read with Get.
type Info struct {
	values map[Datum]string
}

// NewInfo returns an empty Info builder.
func NewInfo() *Info {
	return &Info{values: make(map[Datum]string)}
}

// Set stores value for datum and returns the receiver for chaining. An
// empty value is not stored, so the datum stays absent.
func (i *Info) Set(d Datum, value string) *Info {
	if value == "" {
		return i
	}
	i.values[d] = value
	return i
}

// Get returns the stored value for d, or its default display string if
// absent (§4.2).
func (i *Info) Get(d Datum) string {
	if i == nil {
		return defaultDisplay[d]
	}
	if v, ok := i.values[d]; ok {
		return v
	}
	return defaultDisplay[d]
}

// Has reports whether datum has an explicitly stored (non-default) value.
func (i *Info) Has(d Datum) bool {
	if i == nil {
		return false
	}
	_, ok := i.values[d]
	return ok
}

// present returns the data that have explicit values, in declaration order,
// with Id always first (§3).
func (i *Info) present() []Datum {
	var out []Datum
	for _, d := range orderedData {
		if i.Has(d) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return rank(out[a]) < rank(out[b]) })
	return out
}

// String renders every present datum as "Key: value", one per line, with
// keys right-padded to the longest present key's column (§4.2).
func (i *Info) String() string {
	data := i.present()
	if len(data) == 0 {
		return ""
	}
	width := 0
	for _, d := range data {
		if n := len(d.String()); n > width {
			width = n
		}
	}
	var b strings.Builder
	for idx, d := range data {
		if idx > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s %s", width+1, d.String()+":", i.Get(d))
	}
	return b.String()
}
