package api

import "errors"

// Failure classes. Every error returned by Client wraps exactly one of these;
// use errors.Is to classify.
var (
	ErrNetwork   = errors.New("network failure")
	ErrMalformed = errors.New("malformed response")
	ErrNotFound  = errors.New("not found")
	ErrStatus    = errors.New("unexpected status")
	ErrGraphQL   = errors.New("graphql error")
)
