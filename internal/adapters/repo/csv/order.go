package csv

import (
	"bytes"
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

// Codec reads and writes order files and debug trial lists.
type Codec struct{}

var (
	_ ports.OrderSource  = Codec{}
	_ ports.OrderEncoder = Codec{}
)

func (Codec) EncodeOrder(records []domain.WireRecord) ([]byte, error) {
	return EncodeOrder(records)
}

func (Codec) EncodeDebug(sequence domain.Sequence) ([]byte, error) {
	return EncodeDebug(sequence)
}

func (Codec) ReadOrder(ctx context.Context, path string, expectedRows int) ([]domain.WireRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open order file: %w", err)
	}
	defer file.Close()

	records, err := DecodeOrder(file)
	if err != nil {
		return nil, fmt.Errorf("order file %s: %w", path, err)
	}
	if expectedRows > 0 && len(records) != expectedRows {
		return nil, fmt.Errorf("order file %s: %w: %d rows, want %d", path, domain.ErrInvalidInput, len(records), expectedRows)
	}
	return records, nil
}

func DecodeOrder(r io.Reader) ([]domain.WireRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var records []domain.WireRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		line, _ := reader.FieldPos(0)

		typeCode, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: type code %q is not an integer", domain.ErrInvalidInput, line, row[0])
		}
		lagCode, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: lag code %q is not an integer", domain.ErrInvalidInput, line, row[1])
		}
		records = append(records, domain.WireRecord{TypeCode: typeCode, LagCode: lagCode})
	}
	return records, nil
}

// EncodeOrder writes headerless "type_code,lag_code" rows.
func EncodeOrder(records []domain.WireRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, record := range records {
		if err := writer.Write([]string{strconv.Itoa(record.TypeCode), strconv.Itoa(record.LagCode)}); err != nil {
			return nil, fmt.Errorf("encode order row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush order rows: %w", err)
	}
	return buf.Bytes(), nil
}
