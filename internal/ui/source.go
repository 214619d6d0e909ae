package ui

import (
	"context"

	"clinicdash/internal/roster"
)

// Source is where a list gets its data: the collection on Init and one
// expansion per activation. api.DoctorSource and api.PatientSource implement it.
type Source interface {
	Kind() roster.Kind
	List(ctx context.Context) ([]roster.Entity, error)
	Expand(ctx context.Context, id string) (roster.Expansion, error)
}
