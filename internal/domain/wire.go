package domain

import (
	"errors"
	"fmt"
)

// TrialKind is the hundreds digit of a wire type code.
type TrialKind int

const (
	KindRepeatFirst TrialKind = iota
	KindRepeatSecond
	KindLureFirst
	KindLureSecond
	KindFoil
)

type IdealResponse int

const (
	ResponseOld IdealResponse = iota
	ResponseSimilar
	ResponseNew
)

const (
	kindWidth     = 100
	lagCodeOffset = 500
	NoLagCode     = -1
)

func (k TrialKind) Valid() bool {
	return k >= KindRepeatFirst && k <= KindFoil
}

func (k TrialKind) PairType() PairType {
	switch k {
	case KindRepeatFirst, KindRepeatSecond:
		return PairTypeRepeat
	case KindLureFirst, KindLureSecond:
		return PairTypeLure
	default:
		return PairTypeFoil
	}
}

func (k TrialKind) Role() Role {
	switch k {
	case KindRepeatFirst, KindLureFirst:
		return RoleFirst
	case KindRepeatSecond, KindLureSecond:
		return RoleSecond
	default:
		return RoleNone
	}
}

// IdealResponse: only second occurrences are old or similar.
func (k TrialKind) IdealResponse() IdealResponse {
	switch k {
	case KindRepeatSecond:
		return ResponseOld
	case KindLureSecond:
		return ResponseSimilar
	default:
		return ResponseNew
	}
}

func (r IdealResponse) String() string {
	switch r {
	case ResponseOld:
		return "old"
	case ResponseSimilar:
		return "similar"
	default:
		return "new"
	}
}

func KindOf(pairType PairType, role Role) (TrialKind, error) {
	switch {
	case pairType == PairTypeRepeat && role == RoleFirst:
		return KindRepeatFirst, nil
	case pairType == PairTypeRepeat && role == RoleSecond:
		return KindRepeatSecond, nil
	case pairType == PairTypeLure && role == RoleFirst:
		return KindLureFirst, nil
	case pairType == PairTypeLure && role == RoleSecond:
		return KindLureSecond, nil
	case pairType == PairTypeFoil && role == RoleNone:
		return KindFoil, nil
	default:
		return 0, fmt.Errorf("%w: no trial kind for %s/%s", ErrInvalidInput, pairType, role)
	}
}

type WireRecord struct {
	TypeCode int
	LagCode  int
}

type Trial struct {
	Kind          TrialKind
	PairType      PairType
	Role          Role
	StimIndex     int
	Lag           int
	IdealResponse IdealResponse
}

func Encode(slot Slot) (WireRecord, error) {
	if !slot.Assigned() {
		return WireRecord{}, fmt.Errorf("encode slot %d: %w", slot.Position, ErrSequenceIncomplete)
	}
	if slot.StimNumber < 1 || slot.StimNumber > MaxStimNumber {
		return WireRecord{}, fmt.Errorf("%w: slot %d stim number %d outside 1..%d", ErrInvalidInput, slot.Position, slot.StimNumber, MaxStimNumber)
	}

	kind, err := KindOf(slot.PairType, slot.Role)
	if err != nil {
		return WireRecord{}, err
	}

	record := WireRecord{TypeCode: int(kind)*kindWidth + slot.StimNumber, LagCode: NoLagCode}
	if slot.Role == RoleSecond {
		record.LagCode = lagCodeOffset + slot.Lag
	}
	return record, nil
}

func EncodeSequence(sequence Sequence) ([]WireRecord, error) {
	records := make([]WireRecord, 0, sequence.Len())
	for _, slot := range sequence.Slots() {
		record, err := Encode(slot)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func Decode(record WireRecord) (Trial, error) {
	if record.TypeCode < 0 {
		return Trial{}, mappingError(record, "negative type code")
	}

	kind := TrialKind(record.TypeCode / kindWidth)
	if !kind.Valid() {
		return Trial{}, mappingError(record, fmt.Sprintf("type range %d is not defined", kind))
	}

	stimIndex := record.TypeCode % kindWidth
	if stimIndex == 0 {
		return Trial{}, mappingError(record, "stim index 0")
	}

	// Lag codes are not cross-checked against the role; the summary
	// reports declared lags that disagree with the sequence.
	lag := NoLag
	if record.LagCode != NoLagCode {
		lag = record.LagCode - lagCodeOffset
	}

	return Trial{
		Kind:          kind,
		PairType:      kind.PairType(),
		Role:          kind.Role(),
		StimIndex:     stimIndex,
		Lag:           lag,
		IdealResponse: kind.IdealResponse(),
	}, nil
}

func DecodeAll(records []WireRecord) ([]Trial, error) {
	trials := make([]Trial, 0, len(records))
	for i, record := range records {
		trial, err := Decode(record)
		if err != nil {
			var mapping *DecodeMappingError
			if errors.As(err, &mapping) {
				mapping.Row = i + 1
			}
			return nil, err
		}
		trials = append(trials, trial)
	}
	return trials, nil
}

func mappingError(record WireRecord, reason string) *DecodeMappingError {
	return &DecodeMappingError{TypeCode: record.TypeCode, LagCode: record.LagCode, Reason: reason}
}
