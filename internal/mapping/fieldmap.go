// Package mapping declares the correspondence between CMS record
// attributes and SIF (Service Inspection Form) template field names, and
// derives coverage reports from it.
package mapping

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fieldworks/cms-sif-converter/internal/cms"
)

// Pair maps one CMS record attribute to one SIF form field name.
type Pair struct {
	CMSField string `json:"cms_field"`
	SIFField string `json:"sif_field"`
}

// FieldMap is an ordered table of attribute -> target-field pairs. The
// CMS side is unique; the SIF side may carry duplicates, which projection
// resolves first-registered-wins.
type FieldMap struct {
	pairs []Pair
}

// defaultPairs is the stock CMS -> SIF correspondence. Field names follow
// the AcroForm field names of the standard SIF template.
var defaultPairs = []Pair{
	// Basic information
	{cms.AttrWindFarm, "Wind farm number"},
	{cms.AttrTurbineNumber, "Wind turbine number"},
	{cms.AttrTurbineType, "Wind turbine type_2"},
	{cms.AttrLocation, "Site location"},
	{cms.AttrServiceLifeYear, "Service life year"},

	// Personnel
	{cms.AttrTechnicians, "Service technician 1"},
	{cms.AttrServiceManager, "Service manager"},

	// Dates
	{cms.AttrCommissioningDate, "DateRow1"},
	{cms.AttrServiceDate, "Date"},

	// Network / DDAU
	{cms.AttrDDAUMAC, "MAC address DDAU"},
	{cms.AttrIPAddress, "IP address DDAU"},
	{cms.AttrTurbineIP, "IP address of the wind turbine"},
	{cms.AttrGateway, "Gateway"},
	{cms.AttrControllerType, "Controller type"},
	{cms.AttrDASServer, "DAS Server"},

	// Serial numbers and versions
	{cms.AttrSerialNumber, "Serial number"},
	{cms.AttrFirmwareVersion, "Firmware version"},
}

// Default returns the stock field mapping.
func Default() *FieldMap {
	m, err := New(defaultPairs)
	if err != nil {
		// The stock table is validated by tests; a bad entry is a
		// programming error.
		panic(err)
	}
	return m
}

// New builds a FieldMap from ordered pairs. Every CMS side must name a
// real record attribute and appear at most once.
func New(pairs []Pair) (*FieldMap, error) {
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if !cms.IsAttribute(p.CMSField) {
			return nil, fmt.Errorf("unknown CMS attribute %q in mapping", p.CMSField)
		}
		if seen[p.CMSField] {
			return nil, fmt.Errorf("duplicate CMS attribute %q in mapping", p.CMSField)
		}
		if p.SIFField == "" {
			return nil, fmt.Errorf("empty SIF field name for CMS attribute %q", p.CMSField)
		}
		seen[p.CMSField] = true
	}

	m := &FieldMap{pairs: make([]Pair, len(pairs))}
	copy(m.pairs, pairs)
	return m, nil
}

// Load reads a custom mapping from a JSON file holding an ordered array
// of {"cms_field": ..., "sif_field": ...} objects.
func Load(path string) (*FieldMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a custom mapping from JSON bytes.
func Parse(data []byte) (*FieldMap, error) {
	var pairs []Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode mapping: %w", err)
	}
	return New(pairs)
}

// Len returns the number of pairs in the mapping.
func (m *FieldMap) Len() int { return len(m.pairs) }

// Pairs returns the mapping's pairs in registration order.
func (m *FieldMap) Pairs() []Pair {
	pairs := make([]Pair, len(m.pairs))
	copy(pairs, m.pairs)
	return pairs
}

// HasCMSField reports whether the mapping covers the given record
// attribute.
func (m *FieldMap) HasCMSField(attr string) bool {
	for _, p := range m.pairs {
		if p.CMSField == attr {
			return true
		}
	}
	return false
}

// Reverse derives the SIF-field -> CMS-attribute lookup. It is recomputed
// from the pairs on every call, never maintained separately, so it cannot
// drift. On SIF-side duplicates the first-registered pair wins.
func (m *FieldMap) Reverse() map[string]string {
	rev := make(map[string]string, len(m.pairs))
	for _, p := range m.pairs {
		if _, ok := rev[p.SIFField]; !ok {
			rev[p.SIFField] = p.CMSField
		}
	}
	return rev
}

// Project converts a record into SIF field values. Present, non-empty
// attributes are included verbatim under their target field name; absent
// attributes are omitted, never written as empty strings. When two pairs
// target the same SIF field the first-registered pair wins.
func (m *FieldMap) Project(rec *cms.Record) map[string]string {
	values := make(map[string]string)
	for _, p := range m.pairs {
		v := rec.Get(p.CMSField)
		if v == "" {
			continue
		}
		if _, ok := values[p.SIFField]; ok {
			continue
		}
		values[p.SIFField] = v
	}
	return values
}
