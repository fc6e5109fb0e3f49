package chunker

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter maps a span of text to a token count. It only feeds size
// estimates; windows are always cut on whitespace-delimited words.
type Counter func(text string) int

// Words is the splitting unit: whitespace-delimited words.
func Words(text string) []string {
	return strings.Fields(text)
}

// WordCount is the default Counter.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// NewTiktokenCounter returns a Counter backed by a BPE encoding such as
// "cl100k_base". Loading the encoding may fetch its vocabulary on first use.
func NewTiktokenCounter(encoding string) (Counter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", encoding, err)
	}
	return func(text string) int {
		if text == "" {
			return 0
		}
		return len(enc.Encode(text, nil, nil))
	}, nil
}

// CounterByName resolves a configured tokenizer name. "" and "words" select
// WordCount; anything else is treated as a tiktoken encoding name.
func CounterByName(name string) (Counter, error) {
	switch name {
	case "", "words":
		return WordCount, nil
	default:
		return NewTiktokenCounter(name)
	}
}
