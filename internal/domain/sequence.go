package domain

import "fmt"

// SequenceBuilder is the single mutable owner of a trial array under
// construction. Every slot is written exactly once.
type SequenceBuilder struct {
	slots      []Slot
	unassigned int
}

func NewSequenceBuilder(length int) *SequenceBuilder {
	slots := make([]Slot, length)
	for i := range slots {
		slots[i].Position = i
	}
	return &SequenceBuilder{slots: slots, unassigned: length}
}

func (b *SequenceBuilder) Len() int {
	return len(b.slots)
}

func (b *SequenceBuilder) Unassigned() int {
	return b.unassigned
}

func (b *SequenceBuilder) IsFree(position int) bool {
	return position >= 0 && position < len(b.slots) && !b.slots[position].assigned
}

func (b *SequenceBuilder) FreePositions() []int {
	free := make([]int, 0, b.unassigned)
	for _, slot := range b.slots {
		if !slot.assigned {
			free = append(free, slot.Position)
		}
	}
	return free
}

// PairStarts lists every i where slot i and slot i+lag+1 are both free.
func (b *SequenceBuilder) PairStarts(lag int) []int {
	gap := lag + 1
	var starts []int
	for i := 0; i+gap < len(b.slots); i++ {
		if !b.slots[i].assigned && !b.slots[i+gap].assigned {
			starts = append(starts, i)
		}
	}
	return starts
}

func (b *SequenceBuilder) Assign(position, stimNumber int, pairType PairType, role Role, lag int) error {
	if position < 0 || position >= len(b.slots) {
		return fmt.Errorf("assign slot %d: out of range [0,%d)", position, len(b.slots))
	}
	if b.slots[position].assigned {
		return fmt.Errorf("assign slot %d: %w", position, ErrSlotAlreadyAssigned)
	}

	b.slots[position] = Slot{
		Position:   position,
		StimNumber: stimNumber,
		PairType:   pairType,
		Role:       role,
		Lag:        lag,
		assigned:   true,
	}
	b.unassigned--
	return nil
}

func (b *SequenceBuilder) AssignPair(start, lag, stimNumber int, pairType PairType) error {
	end := start + lag + 1
	if !b.IsFree(start) || !b.IsFree(end) {
		return fmt.Errorf("assign %s #%d at %d/%d: %w", pairType, stimNumber, start, end, ErrSlotAlreadyAssigned)
	}
	if err := b.Assign(start, stimNumber, pairType, RoleFirst, lag); err != nil {
		return err
	}
	return b.Assign(end, stimNumber, pairType, RoleSecond, lag)
}

// Freeze hands out an immutable copy once every slot is assigned.
func (b *SequenceBuilder) Freeze() (Sequence, error) {
	if b.unassigned > 0 {
		return Sequence{}, fmt.Errorf("%w: %d of %d slots unassigned", ErrSequenceIncomplete, b.unassigned, len(b.slots))
	}

	slots := make([]Slot, len(b.slots))
	copy(slots, b.slots)
	return Sequence{slots: slots}, nil
}

type Sequence struct {
	slots []Slot
}

func (s Sequence) Len() int {
	return len(s.slots)
}

func (s Sequence) At(position int) Slot {
	return s.slots[position]
}

func (s Sequence) Slots() []Slot {
	slots := make([]Slot, len(s.slots))
	copy(slots, s.slots)
	return slots
}
