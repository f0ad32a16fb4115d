// Package spreadsheet reads imported CSV and Excel files into raw rows and
// writes tab collections back out in the same formats.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

// DefaultMaxFileSize bounds how much of an upload ReadRows will buffer.
const DefaultMaxFileSize = 10 << 20

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// ErrUnsupportedFormat is returned for files that are neither .csv nor .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Format identifies a spreadsheet encoding by file extension.
type Format string

const (
	FormatCSV  Format = ".csv"
	FormatXLSX Format = ".xlsx"
)

// FormatOf returns the format of filename.
func FormatOf(filename string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

// ReadRows parses r as the spreadsheet named filename. The first non-blank
// row is the header; blank rows are dropped and short rows padded. Keys of
// the returned records are the trimmed header cells, plus core.LineField
// holding the row's line in the file.
//
// maxSize <= 0 means DefaultMaxFileSize.
func ReadRows(r io.Reader, filename string, maxSize int64) ([]core.RawRecord, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	payload, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(payload)) > maxSize {
		return nil, fmt.Errorf("file too large: limit is %d bytes", maxSize)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, errors.New("empty file")
	}

	var records []sheetRow
	switch format {
	case FormatCSV:
		records, err = parseCSV(payload)
	case FormatXLSX:
		records, err = parseXLSX(payload)
	}
	if err != nil {
		return nil, err
	}
	return toRawRecords(records)
}

// sheetRow is a parsed row and the 1-based line it started on.
type sheetRow struct {
	line  int
	cells []string
}

func parseCSV(payload []byte) ([]sheetRow, error) {
	payload, err := toUTF8(payload)
	if err != nil {
		return nil, err
	}
	payload = bytes.TrimPrefix(payload, byteOrderMark)

	csvReader := csv.NewReader(bytes.NewReader(payload))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comma = sniffDelimiter(payload)

	var rows []sheetRow
	for {
		cells, err := csvReader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		line, _ := csvReader.FieldPos(0)
		rows = append(rows, sheetRow{line: line, cells: cells})
	}
}

// toUTF8 converts a CSV payload to UTF-8. UTF-16 files are recognised by
// their byte order mark; any other payload that is not valid UTF-8 is read
// as Windows-1252, the code page Excel uses for French CSV exports.
func toUTF8(payload []byte) ([]byte, error) {
	var dec *encoding.Decoder
	switch {
	case bytes.HasPrefix(payload, []byte{0xFF, 0xFE}), bytes.HasPrefix(payload, []byte{0xFE, 0xFF}):
		dec = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case utf8.Valid(payload):
		return payload, nil
	default:
		dec = charmap.Windows1252.NewDecoder()
	}

	out, err := dec.Bytes(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}
	return out, nil
}

// sniffDelimiter picks the most frequent of ',', ';' and tab on the first
// line. French locales export with ';' and "Unicode text" with tabs.
func sniffDelimiter(payload []byte) rune {
	line := payload
	if i := bytes.IndexByte(payload, '\n'); i >= 0 {
		line = payload[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, r := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(r))); n > bestCount {
			best, bestCount = r, n
		}
	}
	return best
}

func parseXLSX(payload []byte) ([]sheetRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("empty file: workbook has no sheets")
	}

	// GetRows keeps blank rows in the middle, so index i is row i+1.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx: %w", err)
	}
	out := make([]sheetRow, len(rows))
	for i, cells := range rows {
		out[i] = sheetRow{line: i + 1, cells: cells}
	}
	return out, nil
}

func toRawRecords(records []sheetRow) ([]core.RawRecord, error) {
	var header []string
	var out []core.RawRecord

	for _, r := range records {
		row := r.cells
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, h := range row {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}

		rec := make(core.RawRecord, len(header)+1)
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			} else {
				rec[h] = ""
			}
		}
		rec[core.LineField] = strconv.Itoa(r.line)
		out = append(out, rec)
	}

	if header == nil {
		return nil, errors.New("empty file: no header row")
	}
	if len(out) == 0 {
		return nil, errors.New("empty file: no data rows")
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
