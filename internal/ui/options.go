package ui

import "github.com/rs/zerolog"

// Options holds the behaviour toggles shared by every list.
// The zero value keeps the quiet defaults: no loading indicator, fetch
// errors not shown, details re-fetched on every activation.
type Options struct {
	ShowLoading    bool
	ShowErrors     bool
	MemoizeDetails bool
	Greeting       string
	Logger         *zerolog.Logger
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}
