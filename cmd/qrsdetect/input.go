package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errNoSamples = errors.New("no samples in input")

// readSignal parses one numeric column from comma, semicolon or whitespace
// separated text. Blank lines and lines starting with '#' are skipped, as is
// a non-numeric header before the first sample.
func readSignal(r io.Reader, column int) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var out []float64
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		if column >= len(fields) {
			return nil, fmt.Errorf("line %d: column %d not present (%d fields)", lineNo, column, len(fields))
		}
		v, err := strconv.ParseFloat(fields[column], 64)
		if err != nil {
			if len(out) == 0 {
				continue
			}
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(out) == 0 {
		return nil, errNoSamples
	}
	return out, nil
}
