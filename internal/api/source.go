package api

import (
	"context"

	"clinicdash/internal/roster"
)

// DoctorSource lists doctors and expands one into its detail record.
type DoctorSource struct {
	Client *Client
}

// Kind implements the list source contract.
func (s DoctorSource) Kind() roster.Kind { return roster.KindDoctors }

// List fetches all doctors.
func (s DoctorSource) List(ctx context.Context) ([]roster.Entity, error) {
	return s.Client.ListDoctors(ctx)
}

// Expand fetches the doctor's detail record.
func (s DoctorSource) Expand(ctx context.Context, id string) (roster.Expansion, error) {
	d, err := s.Client.DoctorDetail(ctx, id)
	if err != nil {
		return roster.Expansion{}, err
	}
	return roster.Expansion{Detail: &d}, nil
}

// PatientSource lists patients and expands one into its related doctors.
type PatientSource struct {
	Client *Client
}

// Kind implements the list source contract.
func (s PatientSource) Kind() roster.Kind { return roster.KindPatients }

// List fetches all patients.
func (s PatientSource) List(ctx context.Context) ([]roster.Entity, error) {
	return s.Client.ListPatients(ctx)
}

// Expand resolves the patient's doctors through the GraphQL service.
func (s PatientSource) Expand(ctx context.Context, id string) (roster.Expansion, error) {
	doctors, err := s.Client.PatientDoctors(ctx, id)
	if err != nil {
		return roster.Expansion{}, err
	}
	return roster.Expansion{Related: doctors}, nil
}
