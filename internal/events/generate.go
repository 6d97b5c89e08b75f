package events

import "time"

// GenerateStart is emitted before a generation run loads its schema.
type GenerateStart struct {
	Schema string
	Output string
}

// GenerateFinish is emitted once a generation run completes or fails.
type GenerateFinish struct {
	Schema   string
	Output   string
	Types    int
	Models   int
	Bytes    int
	Err      error
	Duration time.Duration
}
