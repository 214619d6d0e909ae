// Package fakeapi serves canned doctor and patient data over the same REST
// and GraphQL shapes as the remote services. It backs the `fixtures`
// subcommand and the api package tests.
package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Server is an echo server over a Dataset.
type Server struct {
	echo *echo.Echo
	data *Dataset
}

// New builds a Server with all routes registered.
func New(data *Dataset, logger zerolog.Logger) *Server {
	if data == nil {
		data = &Dataset{}
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(requestLogger(logger))

	s := &Server{echo: e, data: data}
	e.GET("/v1/doctors", s.listDoctors)
	e.GET("/v1/patients", s.listPatients)
	e.GET("/v1/doctor/:id", s.doctorDetail)
	e.POST("/graphql", s.graphql)
	e.POST("/", s.graphql)
	return s
}

// ServeHTTP lets the server be mounted in httptest or another mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr and blocks until the server stops.
// Returns nil after a graceful Shutdown.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) listDoctors(c echo.Context) error {
	return c.JSON(http.StatusOK, nonNil(s.data.Doctors))
}

func (s *Server) listPatients(c echo.Context) error {
	return c.JSON(http.StatusOK, nonNil(s.data.Patients))
}

func (s *Server) doctorDetail(c echo.Context) error {
	d, ok := s.data.Details[c.Param("id")]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "doctor not found"})
	}
	return c.JSON(http.StatusOK, d)
}

type graphqlBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func gqlError(msg string) map[string]any {
	return map[string]any{"errors": []map[string]string{{"message": msg}}}
}

// graphql answers only the patient -> doctors query; anything else is a
// GraphQL-level error with HTTP 200, as real GraphQL servers do.
func (s *Server) graphql(c echo.Context) error {
	var body graphqlBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, gqlError("invalid request body"))
	}
	if !strings.Contains(body.Query, "patient") || !strings.Contains(body.Query, "doctors") {
		return c.JSON(http.StatusOK, gqlError("unsupported query"))
	}
	id, _ := body.Variables["id"].(string)
	if id == "" {
		return c.JSON(http.StatusOK, gqlError("variable $id is required"))
	}

	doctors, ok := s.data.doctorsOf(id)
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{"data": map[string]any{"patient": nil}})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": map[string]any{
			"patient": map[string]any{"doctors": doctors},
		},
	})
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
