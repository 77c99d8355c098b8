package intcode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseProgram parses comma separated integers.
func ParseProgram(text string) ([]int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	fields := strings.Split(text, ",")
	program := make([]int64, 0, len(fields))
	for i, field := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		program = append(program, n)
	}
	return program, nil
}

// ReadPrograms parses one program per non-blank line.
func ReadPrograms(r io.Reader) (ret [][]int64, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		program, err := ParseProgram(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ret = append(ret, program)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}
