package basket

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseCorpus reads a basket file: one basket per line, items separated by
// commas. Blank lines and lines starting with "#" are skipped. Items are
// whitespace-trimmed; duplicate items within a line collapse (set semantics).
// Lines that end up empty after trimming are skipped.
func ParseCorpus(r io.Reader) (Corpus, error) {
	var corpus Corpus

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		b := ParseBasket(line)
		if b.Len() == 0 {
			continue
		}
		corpus = append(corpus, b)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read basket file: %w", err)
	}

	return corpus, nil
}

// ParseBasket parses a single comma-separated item line into a basket.
// Empty fields are dropped.
func ParseBasket(line string) Basket {
	b := make(Basket)
	for _, field := range strings.Split(line, ",") {
		item := strings.TrimSpace(field)
		if item == "" {
			continue
		}
		b.Add(item)
	}
	return b
}
