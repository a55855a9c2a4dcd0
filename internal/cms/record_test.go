package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_AsMap(t *testing.T) {
	rec := &Record{
		WindFarm:      "ABC-12",
		TurbineNumber: "T-042",
		RawText:       "Wind Farm: ABC-12\nTurbine Number: T-042\n",
	}

	m := rec.AsMap()

	assert.Equal(t, map[string]string{
		AttrWindFarm:      "ABC-12",
		AttrTurbineNumber: "T-042",
	}, m)

	// Raw text stays out of every exported view.
	_, ok := m["raw_text"]
	assert.False(t, ok)
}

func TestRecord_AsMapEmptyRecord(t *testing.T) {
	rec := &Record{RawText: "nothing extracted"}
	assert.Empty(t, rec.AsMap())
}

func TestRecord_GetRoundTrip(t *testing.T) {
	rec := &Record{}
	for i, attr := range AttributeNames() {
		rec.set(attr, attr+"-value")
		assert.Equal(t, attr+"-value", rec.Get(attr), "attribute %d (%s)", i, attr)
	}
}

func TestIsAttribute(t *testing.T) {
	assert.True(t, IsAttribute(AttrWindFarm))
	assert.True(t, IsAttribute(AttrFirmwareVersion))
	assert.False(t, IsAttribute("raw_text"))
	assert.False(t, IsAttribute("gearbox_info"))
}

func TestAttributeNamesIsACopy(t *testing.T) {
	names := AttributeNames()
	names[0] = "mutated"
	assert.Equal(t, AttrWindFarm, AttributeNames()[0])
}
