package ui

import (
	"strings"

	"clinicdash/internal/roster"
	"clinicdash/internal/ui/textutil"
)

const detailLabelWidth = 11

// RenderDetail renders a doctor's detail record. Nil renders "" and empty
// fields are skipped.
func RenderDetail(d *roster.DoctorDetail) string {
	if d == nil {
		return ""
	}
	fields := []struct{ label, value string }{
		{"DOB", d.DOB},
		{"Specialty", d.Specialty},
		{"Address", d.Address},
	}
	var lines []string
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		label := Styles.Muted.Render(textutil.PadRightVisual(f.label+":", detailLabelWidth))
		lines = append(lines, label+Styles.Normal.Render(f.value))
	}
	if len(lines) == 0 {
		return ""
	}
	return Styles.Detail.Render(strings.Join(lines, "\n"))
}

// RenderRelations renders a nested list of related entities, one per line.
func RenderRelations(related []roster.Entity) string {
	if len(related) == 0 {
		return ""
	}
	lines := make([]string, len(related))
	for i, e := range related {
		lines[i] = Styles.Normal.Render("- " + e.Name)
	}
	return Styles.Detail.Render(strings.Join(lines, "\n"))
}

// RenderExpansion renders whatever an expansion carries.
func RenderExpansion(e roster.Expansion) string {
	if e.Empty() {
		return ""
	}
	parts := make([]string, 0, 2)
	if s := RenderDetail(e.Detail); s != "" {
		parts = append(parts, s)
	}
	if s := RenderRelations(e.Related); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}
