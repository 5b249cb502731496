package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Header line of the exported files.
const CSVHeader = "tx_id,latency_ms,fee"

// checkFileExists is a simple stat check to ensure that the file
// exists at the given path.
func checkFileExists(path string) bool {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return true
}

// formatRow renders one result. Fields are never quoted and a result without
// fee leaves the last field empty.
func formatRow(result *TransactionResult) string {
	var fee string

	if result.Fee != nil {
		fee = strconv.FormatFloat(*result.Fee, 'f', -1, 64)
	}

	return result.TxId + "," +
		strconv.FormatInt(result.LatencyMs(), 10) + "," + fee
}

// FormatCSV renders the results as the content of a result file: the header
// line followed by one line per result, lines joined by '\n'.
func FormatCSV(results []*TransactionResult) string {
	lines := make([]string, 0, len(results)+1)

	lines = append(lines, CSVHeader)

	for _, result := range results {
		lines = append(lines, formatRow(result))
	}

	return strings.Join(lines, "\n")
}

// Timestamp renders `now` as an ISO-8601 UTC timestamp with milliseconds,
// with ':' and '.' replaced so it can be part of a file name
// (e.g. 2025-01-02T03-04-05-678Z).
func Timestamp(now time.Time) string {
	iso := now.UTC().Format("2006-01-02T15:04:05.000Z")

	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}

// FileName is the name of the result file of a run labelled `label`.
func FileName(label string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", label, Timestamp(now))
}

// Export writes the results of a run in the `resultDir` directory, created
// if needed, and returns the path of the written file.
// An existing file with the same name is overwritten.
func Export(resultDir, label string, results []*TransactionResult, now time.Time) (string, error) {
	// First, check that the directory exists
	if !checkFileExists(resultDir) {
		err := os.MkdirAll(resultDir, 0755)
		if err != nil {
			return "", err
		}
	}

	path := filepath.Join(resultDir, FileName(label, now))

	err := os.WriteFile(path, []byte(FormatCSV(results)), 0644)
	if err != nil {
		return "", err
	}

	return path, nil
}
