package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidSchedule     = errors.New("invalid lag schedule")
	ErrPlacementExhausted  = errors.New("placement exhausted")
	ErrPoolExhausted       = errors.New("pool exhausted")
	ErrDecodeMapping       = errors.New("decode mapping failed")
	ErrFoilCountMismatch   = errors.New("foil count mismatch")
	ErrSequenceIncomplete  = errors.New("sequence incomplete")
	ErrSlotAlreadyAssigned = errors.New("slot already assigned")
)

// PlacementExhaustedError reports a pair that no remaining lag of its bin
// could host.
type PlacementExhaustedError struct {
	PairType   PairType
	Bin        string
	BinIndex   int
	StimNumber int
	Unassigned int
}

func (e *PlacementExhaustedError) Error() string {
	return fmt.Sprintf("out of possible lags placing %s #%d in bin %d (%s): %d slots remain",
		e.PairType, e.StimNumber, e.BinIndex, e.Bin, e.Unassigned)
}

func (e *PlacementExhaustedError) Unwrap() error {
	return ErrPlacementExhausted
}

type PoolExhaustedError struct {
	Bin       int
	LureSlot  int
	Available int
	Required  int
}

func (e *PoolExhaustedError) Error() string {
	if e.Bin == 0 {
		return fmt.Sprintf("lure bins hold %d identities, need %d", e.Available, e.Required)
	}
	return fmt.Sprintf("difficulty bin %d ran out of identities at lure %d (%d available)", e.Bin, e.LureSlot, e.Available)
}

func (e *PoolExhaustedError) Unwrap() error {
	return ErrPoolExhausted
}

// DecodeMappingError is returned for wire records or pool lookups that do
// not map onto a concrete trial or image.
type DecodeMappingError struct {
	Row      int
	TypeCode int
	LagCode  int
	Reason   string
}

func (e *DecodeMappingError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: type code %d lag code %d: %s", e.Row, e.TypeCode, e.LagCode, e.Reason)
	}
	return fmt.Sprintf("type code %d lag code %d: %s", e.TypeCode, e.LagCode, e.Reason)
}

func (e *DecodeMappingError) Unwrap() error {
	return ErrDecodeMapping
}
