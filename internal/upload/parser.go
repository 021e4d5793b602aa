package upload

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for file extensions no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NumberStyle tells ParseNumberStyle which separator groups thousands.
type NumberStyle int

const (
	// NumberAuto treats the last separator as the decimal one.
	NumberAuto NumberStyle = iota
	// NumberBR groups thousands with '.' and uses ',' for decimals (';' files).
	NumberBR
	// NumberUS groups thousands with ',' and uses '.' for decimals (',' files).
	NumberUS
)

// Sheet is the raw content of one uploaded file after header validation.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
	// Style is derived from the file: ';' → NumberBR, ',' → NumberUS,
	// workbooks (raw cell values) → NumberAuto.
	Style NumberStyle
}

// Number parses a cell of this sheet using the sheet's number style.
func (s Sheet) Number(cell string) (float64, error) {
	return ParseNumberStyle(cell, s.Style)
}

// ReadSheet opens h and parses it into a Sheet whose header must match
// expected EXACTLY (order + count; case and surrounding spaces ignored).
//
// Supported formats, selected by extension:
//   - .csv / .txt: ';' (B3 style) or ',' delimited, detected from the header line.
//   - .xlsx: first worksheet.
//
// It fails on:
//   - nil handle or unsupported extension
//   - header not matching expected order/length
//   - a row with more cells than the header
//
// It tolerates:
//   - a UTF-8 BOM
//   - blank rows (skipped)
//   - short rows (padded with empty cells; workbooks drop trailing empty cells)
func ReadSheet(ctx context.Context, h Handle, expected []string) (Sheet, error) {
	if h == nil {
		return Sheet{}, errors.New("missing upload")
	}
	name := h.Name()

	rc, err := h.Open()
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: open: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	var (
		records [][]string
		style   = NumberAuto
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		var comma rune
		records, comma, err = readDelimited(ctx, rc)
		style = NumberBR
		if comma == ',' {
			style = NumberUS
		}
	case ".xlsx":
		records, err = readWorkbook(ctx, rc)
	default:
		return Sheet{}, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", name, err)
	}

	sheet, err := toSheet(ctx, records, expected)
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", name, err)
	}
	sheet.Name = name
	sheet.Style = style
	return sheet, nil
}

func readDelimited(ctx context.Context, r io.Reader) ([][]string, rune, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	comma := detectDelimiter(br)
	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // checked explicitly in toSheet

	var records [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, comma, err
		}
		rec, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, comma, fmt.Errorf("read line %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, comma, nil
}

// detectDelimiter inspects the header line without consuming it.
func detectDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(4096)
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if bytes.IndexByte(head, ';') < 0 && bytes.IndexByte(head, ',') >= 0 {
		return ','
	}
	return ';'
}

// readWorkbook streams the first worksheet row by row so a cancelled
// context stops large uploads. Cells are read raw, so numbers keep their
// stored value ("1500", "1.125") instead of the display format.
func readWorkbook(ctx context.Context, r io.Reader) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer func() { _ = rows.Close() }()

	var records [][]string
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q row %d: %w", sheet, len(records)+1, err)
		}
		records = append(records, cols)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return records, nil
}

func toSheet(ctx context.Context, records [][]string, expected []string) (Sheet, error) {
	if len(records) == 0 {
		return Sheet{}, errors.New("empty file")
	}

	header := records[0]
	if len(header) != len(expected) {
		return Sheet{}, fmt.Errorf("invalid header length: expected %d, got %d", len(expected), len(header))
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), expected[i]) {
			return Sheet{}, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expected[i], h)
		}
	}

	sheet := Sheet{Header: append([]string(nil), expected...)}
	for i, rec := range records[1:] {
		if err := ctx.Err(); err != nil {
			return Sheet{}, err
		}
		line := i + 2
		if isBlank(rec) {
			continue
		}
		if len(rec) > len(expected) {
			return Sheet{}, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(expected), len(rec))
		}
		row := make([]string, len(expected))
		for j := range rec {
			row[j] = strings.TrimSpace(rec[j])
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ParseNumber parses a number whose style is unknown, such as a form
// field. It accepts a "R$" prefix and both "1.234,56" and "1,234.56";
// the last separator is the decimal one.
func ParseNumber(s string) (float64, error) {
	return ParseNumberStyle(s, NumberAuto)
}

// ParseNumberStyle parses a numeric cell written in style. For NumberBR and
// NumberUS the grouping separator must split the integer part into groups
// of three digits, so "1.500" is 1500 in a ';' file and "10.50" is rejected
// there.
func ParseNumberStyle(s string, style NumberStyle) (float64, error) {
	raw := s
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return 0, errors.New("empty number")
	}

	var err error
	switch style {
	case NumberBR:
		s, err = normalizeGrouped(s, '.', ',')
	case NumberUS:
		s, err = normalizeGrouped(s, ',', '.')
	default:
		s = normalizeAuto(s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", raw, err)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}

func normalizeAuto(s string) string {
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}

// normalizeGrouped rewrites s into strconv form, validating thousand groups.
func normalizeGrouped(s string, group, decimal byte) (string, error) {
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	if strings.Count(s, string(decimal)) > 1 {
		return "", errors.New("more than one decimal separator")
	}
	intPart, frac, hasFrac := strings.Cut(s, string(decimal))
	if strings.IndexByte(frac, group) >= 0 {
		return "", errors.New("grouping separator after the decimal one")
	}
	if strings.IndexByte(intPart, group) >= 0 {
		groups := strings.Split(intPart, string(group))
		if len(groups[0]) < 1 || len(groups[0]) > 3 {
			return "", errors.New("malformed thousands grouping")
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return "", errors.New("malformed thousands grouping")
			}
		}
		intPart = strings.Join(groups, "")
	}
	if hasFrac {
		return sign + intPart + "." + frac, nil
	}
	return sign + intPart, nil
}
