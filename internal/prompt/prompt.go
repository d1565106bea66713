// Package prompt loads prompt templates and fills their substitution slots.
//
// Templates use {name} for a slot and {{ / }} for literal braces.
package prompt

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ExtractionTemplate is the template used for lab result field extraction.
const ExtractionTemplate = "extraction_prompt.txt"

// TextSlot is the slot that receives the document text.
const TextSlot = "extracted_text"

var ErrSlotMissing = errors.New("substitution slot not found in template")

//go:embed templates/*.txt
var embedded embed.FS

type Store struct {
	fsys fs.FS
}

// NewStore serves templates from fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// NewDefaultStore serves templates from dir, or the built-in templates when dir is empty.
func NewDefaultStore(dir string) *Store {
	if dir == "" {
		sub, _ := fs.Sub(embedded, "templates")
		return NewStore(sub)
	}
	return NewStore(os.DirFS(dir))
}

func (s *Store) Load(name string) (string, error) {
	b, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return "", fmt.Errorf("failed to load prompt %q: %w", name, err)
	}
	return string(b), nil
}

// Render loads the named template and substitutes each slot in values.
// Every slot in values must appear in the template.
func (s *Store) Render(name string, values map[string]string) (string, error) {
	tmpl, err := s.Load(name)
	if err != nil {
		return "", err
	}
	return Fill(tmpl, values)
}

// Fill substitutes {key} slots and unescapes doubled braces in one pass.
func Fill(tmpl string, values map[string]string) (string, error) {
	unescaped := strings.NewReplacer("{{", "", "}}", "").Replace(tmpl)

	pairs := []string{"{{", "{", "}}", "}"}
	for key, value := range values {
		slot := "{" + key + "}"
		if !strings.Contains(unescaped, slot) {
			return "", fmt.Errorf("%w: %s", ErrSlotMissing, slot)
		}
		pairs = append(pairs, slot, value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl), nil
}
