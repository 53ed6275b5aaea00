package icmem

import (
	"strconv"
	"strings"
)

// Parse reads a Machine from comma separated text.
// Whitespace around the program and around each token is ignored, as is a trailing comma.
func Parse(text string) (*Machine, error) {
	mem, err := ParseWords(text)
	if err != nil {
		return nil, err
	}
	return New(mem), nil
}

// MustParse is like Parse, but panics on error.
func MustParse(text string) *Machine {
	m, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseWords parses comma separated text into words.
func ParseWords(text string) ([]Word, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ",")
	if text == "" {
		return nil, &ParseError{Index: 0, Token: ""}
	}
	parts := strings.Split(text, ",")
	ret := make([]Word, 0, len(parts))
	for i, part := range parts {
		tok := strings.TrimSpace(part)
		x, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, &ParseError{Index: i, Token: tok, Err: err}
		}
		ret = append(ret, x)
	}
	return ret, nil
}

// AppendCSV appends the machine's memory to out as comma separated text.
func (m *Machine) AppendCSV(out []byte) []byte {
	return AppendWords(out, m.mem)
}

// String returns the memory as comma separated text
func (m *Machine) String() string {
	return string(m.AppendCSV(nil))
}

func AppendWords(out []byte, ws []Word) []byte {
	for i, w := range ws {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendInt(out, w, 10)
	}
	return out
}
