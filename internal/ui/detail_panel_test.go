package ui

import (
	"strings"
	"testing"

	"clinicdash/internal/roster"

	"github.com/stretchr/testify/assert"
)

func TestRenderDetail(t *testing.T) {
	out := RenderDetail(&roster.DoctorDetail{DOB: "1975-03-14", Specialty: "Cardiology", Address: "12 Harbour St"})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "DOB:")
	assert.Contains(t, lines[0], "1975-03-14")
	assert.Contains(t, lines[1], "Cardiology")
	assert.Contains(t, lines[2], "12 Harbour St")
}

func TestRenderDetail_AbsentRendersNothing(t *testing.T) {
	assert.Equal(t, "", RenderDetail(nil))
	assert.Equal(t, "", RenderDetail(&roster.DoctorDetail{}))
}

func TestRenderDetail_SkipsEmptyFields(t *testing.T) {
	out := RenderDetail(&roster.DoctorDetail{Specialty: "Pediatrics"})
	assert.NotContains(t, out, "DOB")
	assert.Contains(t, out, "Pediatrics")
}

func TestRenderRelations(t *testing.T) {
	assert.Equal(t, "", RenderRelations(nil))

	out := RenderRelations([]roster.Entity{{ID: "1", Name: "Dr. A"}, {ID: "2", Name: "Dr. B"}})
	assert.Contains(t, out, "- Dr. A")
	assert.Contains(t, out, "- Dr. B")
	assert.Len(t, strings.Split(out, "\n"), 2)
}

func TestRenderExpansion(t *testing.T) {
	assert.Equal(t, "", RenderExpansion(roster.Expansion{}))
	assert.Contains(t, RenderExpansion(roster.Expansion{Related: []roster.Entity{{ID: "9", Name: "Dr. C"}}}), "Dr. C")
}
