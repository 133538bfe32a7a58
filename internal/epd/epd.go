// Package epd reads EPD and FEN test-suite files.
package epd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sable-chess/sable/internal/board"
)

// Record is one position of a test suite: the four EPD board fields plus
// any trailing operations (e.g. id, bm).
type Record struct {
	FEN string            // normalized six-field FEN
	Ops map[string]string // operation -> operand, quotes stripped
}

// ID returns the record's id operation, or the FEN when absent.
func (r Record) ID() string {
	if id, ok := r.Ops["id"]; ok {
		return id
	}
	return r.FEN
}

// ParseLine parses one EPD line. Plain FEN lines (five or six fields, no
// operations) are accepted as well.
func ParseLine(line string) (Record, error) {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Record{}, fmt.Errorf("epd: too few fields in %q", line)
	}

	fen := strings.Join(fields[:4], " ")
	rest := fields[4:]

	// Lines carrying halfmove and fullmove counters are plain FEN.
	if len(rest) >= 2 && isDigits(rest[0]) && isDigits(rest[1]) {
		fen = fen + " " + rest[0] + " " + rest[1]
		rest = rest[2:]
	} else {
		fen += " 0 1"
	}

	if _, err := board.ParseFEN(fen); err != nil {
		return Record{}, fmt.Errorf("epd: %w", err)
	}

	rec := Record{FEN: fen, Ops: map[string]string{}}

	for _, op := range strings.Split(strings.Join(rest, " "), ";") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		name, operand, _ := strings.Cut(op, " ")
		rec.Ops[name] = strings.Trim(operand, `"`)
	}

	return rec, nil
}

// ParseFile reads every non-empty, non-comment line of an EPD file.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
