package precomputed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/vecscan/core"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Parse reads a distance file and validates that it is complete.
// Errors carry the 1-based number of the offending line and match
// core.ErrDataFormat.
func Parse(r io.Reader) (*Cache, error) {
	c := NewCache()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || isComment(text) {
			continue
		}
		if err := parseLine(c, line, text); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("precomputed: read line %d: %w", line+1, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parseLine(c *Cache, line int, text string) error {
	fields := strings.FieldsFunc(text, isSeparator)
	switch {
	case len(fields) < 3:
		return core.NewDataFormatError(line, "less than three values", nil)
	case len(fields) > 3:
		return core.NewDataFormatError(line, "more than three values", nil)
	}

	id1, err := parseID(fields[0])
	if err != nil {
		return core.NewDataFormatError(line, "id1 is not an integer", err)
	}
	id2, err := parseID(fields[1])
	if err != nil {
		return core.NewDataFormatError(line, "id2 is not an integer", err)
	}
	d, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.NewDataFormatError(line, "distance is not a number", err)
	}

	if err := c.Put(id1, id2, d); err != nil {
		return core.NewDataFormatError(line, err.Error(), err)
	}
	return nil
}

func parseID(s string) (core.ID, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return core.NoID, err
	}
	return core.ID(v), nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', ',', ';':
		return true
	}
	return false
}

// Write writes all pairs of c in the text format, ordered by identifier.
// Distances use the shortest representation that parses back exactly.
func Write(w io.Writer, c *Cache) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	for _, p := range c.Pairs() {
		buf = buf[:0]
		buf = strconv.AppendUint(buf, uint64(p.A), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(p.B), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, p.Distance, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("precomputed: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("precomputed: write: %w", err)
	}
	return nil
}
