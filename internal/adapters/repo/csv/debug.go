package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/bnema/mst-orders/internal/domain"
)

var debugHeader = []string{"stim_number", "trial_type", "repetition", "lag"}

// EncodeDebug renders the human-readable trial list. Foils carry no lag.
func EncodeDebug(sequence domain.Sequence) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(debugHeader); err != nil {
		return nil, fmt.Errorf("encode debug header: %w", err)
	}

	for _, slot := range sequence.Slots() {
		lag := ""
		if slot.PairType != domain.PairTypeFoil {
			lag = strconv.Itoa(slot.Lag)
		}
		row := []string{
			strconv.Itoa(slot.StimNumber),
			string(slot.PairType),
			slot.Role.Repetition(),
			lag,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("encode debug row %d: %w", slot.Position, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush debug rows: %w", err)
	}
	return buf.Bytes(), nil
}
