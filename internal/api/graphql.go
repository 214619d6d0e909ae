package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"clinicdash/internal/jsonutil"
	"clinicdash/internal/roster"
)

// PatientDoctorsQuery resolves the doctors linked to one patient.
const PatientDoctorsQuery = `query($id: ID!) {
  patient(id: $id) {
    doctors {
      id
      name
    }
  }
}`

// GraphQLRequest is the POST body sent to the GraphQL endpoint.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLError is one entry of a GraphQL "errors" array.
type GraphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// PatientDoctors runs the relation query for one patient and returns the
// doctors found under data.patient.doctors. An unknown patient (null
// data.patient) is ErrNotFound; a patient with no doctors field yields an
// empty slice.
func (c *Client) PatientDoctors(ctx context.Context, patientID string) ([]roster.Entity, error) {
	op := "patient doctors " + patientID
	body, err := json.Marshal(GraphQLRequest{
		Query:     PatientDoctorsQuery,
		Variables: map[string]any{"id": patientID},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GraphQLURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var gql graphQLResponse
	err = c.do(req, op, func(r io.Reader) error {
		return jsonutil.DecodeWithContext(r, &gql, op)
	})
	if err != nil {
		return nil, err
	}
	if len(gql.Errors) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrGraphQL, gql.Errors[0].Message)
	}

	patient, err := jsonutil.Dig(gql.Data, "patient")
	if errors.Is(err, jsonutil.ErrPathMissing) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, op, err)
	}
	raw, err := jsonutil.Dig(patient, "doctors")
	if errors.Is(err, jsonutil.ErrPathMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, op, err)
	}
	doctors, err := jsonutil.UnmarshalArrayAllowEmpty[roster.Entity](raw, op)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return doctors, nil
}
