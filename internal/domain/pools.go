package domain

import (
	"fmt"
	"math/rand/v2"
)

const (
	ImageCount    = 192
	PoolSize      = ImageCount / 3
	MinDifficulty = 1
	MaxDifficulty = 5
)

// LureBins are cycled in this order when drawing lure identities.
var LureBins = []int{3, 4, 5}

// BinLabels holds one difficulty bin per image; index i is identity i+1.
type BinLabels []int

func (l BinLabels) Validate() error {
	if len(l) != ImageCount {
		return fmt.Errorf("%w: got %d bin labels, want %d", ErrInvalidInput, len(l), ImageCount)
	}
	for i, bin := range l {
		if bin < MinDifficulty || bin > MaxDifficulty {
			return fmt.Errorf("%w: identity %d has bin %d outside %d..%d", ErrInvalidInput, i+1, bin, MinDifficulty, MaxDifficulty)
		}
	}
	return nil
}

func (l BinLabels) Identities(bin int) []int {
	var identities []int
	for i, label := range l {
		if label == bin {
			identities = append(identities, i+1)
		}
	}
	return identities
}

type Pools struct {
	Repeat []int
	Lure   []int
	Foil   []int
}

func BuildPools(labels BinLabels, rng *rand.Rand) (Pools, error) {
	if err := labels.Validate(); err != nil {
		return Pools{}, err
	}

	byBin := make(map[int][]int, len(LureBins))
	available := 0
	for _, bin := range LureBins {
		identities := labels.Identities(bin)
		rng.Shuffle(len(identities), func(i, j int) {
			identities[i], identities[j] = identities[j], identities[i]
		})
		byBin[bin] = identities
		available += len(identities)
	}
	if available < PoolSize {
		return Pools{}, &PoolExhaustedError{Available: available, Required: PoolSize}
	}

	lures := make([]int, 0, PoolSize)
	used := make(map[int]bool, PoolSize)
	next := make(map[int]int, len(LureBins))
	for i := range PoolSize {
		bin := LureBins[i%len(LureBins)]
		if next[bin] >= len(byBin[bin]) {
			return Pools{}, &PoolExhaustedError{Bin: bin, LureSlot: i + 1, Available: len(byBin[bin])}
		}
		identity := byBin[bin][next[bin]]
		next[bin]++
		lures = append(lures, identity)
		used[identity] = true
	}

	nonLures := make([]int, 0, ImageCount-PoolSize)
	for identity := 1; identity <= ImageCount; identity++ {
		if !used[identity] {
			nonLures = append(nonLures, identity)
		}
	}
	rng.Shuffle(len(nonLures), func(i, j int) {
		nonLures[i], nonLures[j] = nonLures[j], nonLures[i]
	})

	return Pools{
		Repeat: nonLures[PoolSize : 2*PoolSize],
		Lure:   lures,
		Foil:   nonLures[:PoolSize],
	}, nil
}

func (p Pools) Validate() error {
	seen := make(map[int]string, ImageCount)
	for _, pool := range []struct {
		name       string
		identities []int
	}{
		{name: "repeat", identities: p.Repeat},
		{name: "lure", identities: p.Lure},
		{name: "foil", identities: p.Foil},
	} {
		if len(pool.identities) != PoolSize {
			return fmt.Errorf("%w: %s pool has %d identities, want %d", ErrInvalidInput, pool.name, len(pool.identities), PoolSize)
		}
		for _, identity := range pool.identities {
			if identity < 1 || identity > ImageCount {
				return fmt.Errorf("%w: %s pool identity %d outside 1..%d", ErrInvalidInput, pool.name, identity, ImageCount)
			}
			if other, ok := seen[identity]; ok {
				return fmt.Errorf("%w: identity %d in both %s and %s pools", ErrInvalidInput, identity, other, pool.name)
			}
			seen[identity] = pool.name
		}
	}
	return nil
}

// Lookup resolves a 1-based stim index against the pool serving kind.
func (p Pools) Lookup(kind TrialKind, stimIndex int) (int, error) {
	var pool []int
	switch kind.PairType() {
	case PairTypeRepeat:
		pool = p.Repeat
	case PairTypeLure:
		pool = p.Lure
	default:
		pool = p.Foil
	}

	if stimIndex < 1 || stimIndex > len(pool) {
		return 0, &DecodeMappingError{
			TypeCode: int(kind)*kindWidth + stimIndex,
			LagCode:  NoLagCode,
			Reason:   fmt.Sprintf("stim index %d outside %s pool of %d", stimIndex, kind.PairType(), len(pool)),
		}
	}
	return pool[stimIndex-1], nil
}
