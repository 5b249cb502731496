package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ParseCSV reads back the content of a result file.
func ParseCSV(src io.Reader) ([]*TransactionResult, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = 3

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}

	if strings.Join(records[0], ",") != CSVHeader {
		return nil, fmt.Errorf("unexpected header '%s'",
			strings.Join(records[0], ","))
	}

	ret := make([]*TransactionResult, 0, len(records)-1)

	for i, record := range records[1:] {
		latency, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latency: %w", i+2, err)
		}

		var fee *float64
		if record[2] != "" {
			value, err := strconv.ParseFloat(record[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid fee: %w", i+2, err)
			}
			fee = &value
		}

		ret = append(ret, &TransactionResult{
			TxId:    record[0],
			Latency: time.Duration(latency) * time.Millisecond,
			Fee:     fee,
		})
	}

	return ret, nil
}

// ReadCSV reads back a result file written by Export.
func ReadCSV(path string) ([]*TransactionResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseCSV(file)
}
