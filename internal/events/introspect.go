package events

import "time"

// IntrospectStart is emitted before the members of a model declaration are
// read.
type IntrospectStart struct {
	TypeName string
	Model    string
	File     string
}

// IntrospectFinish is emitted after a model declaration has been read.
type IntrospectFinish struct {
	TypeName string
	Model    string
	File     string
	Members  int
	Err      error
	Duration time.Duration
}
