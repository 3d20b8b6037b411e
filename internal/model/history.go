package model

import (
	"time"

	"github.com/google/uuid"
)

// RunRecord captures one finished annealing run for the history view.
type RunRecord struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	NetlistName   string    `json:"netlist_name"`
	Modules       int       `json:"modules"`
	Nets          int       `json:"nets"`
	Cost          float64   `json:"cost"`
	Wirelength    float64   `json:"wirelength"`
	Overlap       float64   `json:"overlap"`
	Iterations    int       `json:"iterations"`
	AcceptedMoves int       `json:"accepted_moves"`
	Seed          int64     `json:"seed"`
}

// NewRunRecord builds a history record from a finished run.
func NewRunRecord(nl Netlist, result PlaceResult) RunRecord {
	return RunRecord{
		ID:            uuid.New().String()[:8],
		Timestamp:     time.Now().UTC(),
		NetlistName:   nl.Name,
		Modules:       len(nl.Modules),
		Nets:          len(nl.Nets),
		Cost:          result.Cost.Total,
		Wirelength:    result.Cost.Wirelength,
		Overlap:       result.Cost.Overlap,
		Iterations:    result.Iterations,
		AcceptedMoves: result.AcceptedMoves,
		Seed:          result.Seed,
	}
}
