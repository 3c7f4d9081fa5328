package tsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bnema/mst-orders/internal/domain"
	"github.com/bnema/mst-orders/internal/ports"
)

type BinLoader struct{}

var _ ports.BinSource = BinLoader{}

func (BinLoader) LoadBins(ctx context.Context, path string) (domain.BinLabels, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bin file: %w", err)
	}
	defer file.Close()

	labels, err := ParseBins(file)
	if err != nil {
		return nil, fmt.Errorf("bin file %s: %w", path, err)
	}
	return labels, nil
}

// ParseBins reads "<identity>\t<bin>" rows, one per image.
func ParseBins(r io.Reader) (domain.BinLabels, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	labels := make(domain.BinLabels, domain.ImageCount)
	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: line %d: want identity and bin columns", domain.ErrInvalidInput, line)
		}

		identity, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: identity %q is not an integer", domain.ErrInvalidInput, line, record[0])
		}
		if identity < 1 || identity > domain.ImageCount {
			return nil, fmt.Errorf("%w: line %d: identity %d not in 1..%d", domain.ErrInvalidInput, line, identity, domain.ImageCount)
		}
		bin, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bin %q is not an integer", domain.ErrInvalidInput, line, record[1])
		}
		if bin < domain.MinDifficulty || bin > domain.MaxDifficulty {
			return nil, fmt.Errorf("%w: line %d: bin %d not in %d..%d", domain.ErrInvalidInput, line, bin, domain.MinDifficulty, domain.MaxDifficulty)
		}
		if labels[identity-1] != 0 {
			return nil, fmt.Errorf("%w: line %d: duplicate identity %d", domain.ErrInvalidInput, line, identity)
		}

		labels[identity-1] = bin
		rows++
	}

	if rows != domain.ImageCount {
		return nil, fmt.Errorf("%w: read %d rows, want %d", domain.ErrInvalidInput, rows, domain.ImageCount)
	}
	return labels, nil
}
