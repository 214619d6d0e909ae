package fakeapi

import (
	"fmt"
	"os"

	"clinicdash/internal/jsonutil"
	"clinicdash/internal/roster"
)

// Dataset is the in-memory content served by the fixture server.
type Dataset struct {
	Doctors  []roster.Entity                `json:"doctors"`
	Patients []roster.Entity                `json:"patients"`
	Details  map[string]roster.DoctorDetail `json:"details"`
	// PatientDoctors maps a patient id to the ids of its doctors.
	PatientDoctors map[string][]string `json:"patient_doctors"`
}

// LoadDataset reads a Dataset from a JSON file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var ds Dataset
	if err := jsonutil.UnmarshalWithContext(data, &ds, "parse dataset "+path); err != nil {
		return nil, err
	}
	return &ds, nil
}

// DefaultDataset returns a small built-in dataset for local development.
func DefaultDataset() *Dataset {
	return &Dataset{
		Doctors: []roster.Entity{
			{ID: "1", Name: "Dr. Ada Okafor"},
			{ID: "2", Name: "Dr. Bruno Silva"},
			{ID: "3", Name: "Dr. Chen Wei"},
		},
		Patients: []roster.Entity{
			{ID: "5", Name: "Maria Lopez"},
			{ID: "6", Name: "Tom Becker"},
		},
		Details: map[string]roster.DoctorDetail{
			"1": {DOB: "1975-03-14", Specialty: "Cardiology", Address: "12 Harbour St, Toronto"},
			"2": {DOB: "1982-11-02", Specialty: "Pediatrics", Address: "400 King St W, Toronto"},
			"3": {DOB: "1969-07-21", Specialty: "Dermatology", Address: "88 Queen St E, Toronto"},
		},
		PatientDoctors: map[string][]string{
			"5": {"1", "3"},
			"6": {"2"},
		},
	}
}

// doctorsOf resolves a patient's doctor ids into entities, skipping unknown ids.
// The bool is false when the patient does not exist.
func (d *Dataset) doctorsOf(patientID string) ([]roster.Entity, bool) {
	known := false
	for _, p := range d.Patients {
		if p.ID == patientID {
			known = true
			break
		}
	}
	if !known {
		return nil, false
	}
	byID := make(map[string]roster.Entity, len(d.Doctors))
	for _, doc := range d.Doctors {
		byID[doc.ID] = doc
	}
	out := []roster.Entity{}
	for _, id := range d.PatientDoctors[patientID] {
		if doc, ok := byID[id]; ok {
			out = append(out, doc)
		}
	}
	return out, true
}
