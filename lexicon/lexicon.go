// Package lexicon loads the static lexicon and semantic-database assets
// documented in the external interface, and ships small embedded defaults
// so the engine is usable without any external file.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nl-sre/semantico/internal/semantics"
	"github.com/nl-sre/semantico/lexeme"
)

// LoadLexicon parses newline-delimited "surface\tPOS1[,POS2...]\tlemma"
// records into a surface-form-keyed table.
func LoadLexicon(r io.Reader) (map[string]lexeme.Word, error) {
	entries := make(map[string]lexeme.Word)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("lexicon: line %d: expected 3 tab-separated fields, got %d", lineNo, len(fields))
		}
		surface, posField, lemma := fields[0], fields[1], fields[2]

		var tags []lexeme.POS
		for _, p := range strings.Split(posField, ",") {
			tag, err := lexeme.ParsePOS(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("lexicon: line %d: %w", lineNo, err)
			}
			tags = append(tags, tag)
		}

		entries[strings.ToLower(surface)] = lexeme.Word{
			Surface: surface,
			Tags:    tags,
			Lemma:   lemma,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadSemanticDB parses newline-delimited "atom\ttag1,tag2,..." records.
func LoadSemanticDB(r io.Reader) (*semantics.DB, error) {
	db := semantics.New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("semantic db: line %d: expected 2 tab-separated fields", lineNo)
		}
		atom := fields[0]
		var tags []string
		for _, t := range strings.Split(fields[1], ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tags = append(tags, t)
			}
		}
		db.Add(atom, tags...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return db, nil
}
