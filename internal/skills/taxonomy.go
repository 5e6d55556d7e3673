// Package skills sorts skill tokens into the fixed resume skill categories.
package skills

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/adityarajsrv/CareerQuill/templates"
)

// OtherSkills is the overflow category name used by the default taxonomy.
const OtherSkills = "Other Skills"

// Category is one named category and its exact-match members.
type Category struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Taxonomy is the ordered category list plus the overflow bucket name.
type Taxonomy struct {
	Other      string     `json:"other"`
	Categories []Category `json:"categories"`
}

// Default returns the built-in taxonomy embedded from templates/skills.json.
func Default() *Taxonomy {
	t, err := parse(templates.SkillsJSON)
	if err != nil {
		panic(fmt.Sprintf("skills: embedded taxonomy is invalid: %v", err))
	}
	return t
}

// LoadTaxonomy reads a taxonomy override and checks it against
// skills.schema.json.
func LoadTaxonomy(r io.Reader) (*Taxonomy, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return parse(b)
}

func parse(b []byte) (*Taxonomy, error) {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(templates.SkillsSchema),
		gojsonschema.NewBytesLoader(b),
	)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("taxonomy: %s", strings.Join(msgs, "; "))
	}

	var t Taxonomy
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	return &t, nil
}
