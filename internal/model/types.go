// Package model defines shared data structures.
package model

import "time"

// Point is a coordinate in window space.
type Point struct {
	X float64
	Y float64
}

// Bounds is the drawable area a target must fit into.
type Bounds struct {
	Width  int
	Height int
}

// Experiment defines the settings of a measurement session.
type Experiment struct {
	// Delay is how long the cursor must stay still before a new target appears.
	Delay       time.Duration
	TargetSize  int
	Trials      int
	IgnoreFirst int
	Bounds      Bounds
	Seed        int64
}

// Measurement is a single recorded trial.
type Measurement struct {
	Index    uint32
	Distance float64
	Elapsed  time.Duration
}

// TerminalConfig defines settings for the terminal frontend.
type TerminalConfig struct {
	TargetSize int
	FrameRate  int
}
