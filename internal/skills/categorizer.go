package skills

import (
	"github.com/adityarajsrv/CareerQuill/internal/model"
	"github.com/adityarajsrv/CareerQuill/internal/textparse"
)

// Categorizer assigns tokens to the first taxonomy category that lists them.
// It is read-only after construction and safe for concurrent use.
type Categorizer struct {
	order []string
	other string
	index map[string]int
}

// NewCategorizer builds a categorizer from t. A token listed by more than one
// category belongs to the earliest one.
func NewCategorizer(t *Taxonomy) *Categorizer {
	c := &Categorizer{other: OtherSkills, index: map[string]int{}}
	if t == nil {
		return c
	}
	if t.Other != "" {
		c.other = t.Other
	}
	for i, cat := range t.Categories {
		c.order = append(c.order, cat.Name)
		for _, m := range cat.Members {
			if _, seen := c.index[m]; !seen {
				c.index[m] = i
			}
		}
	}
	return c
}

// Categorize buckets tokens by exact, case-sensitive match. Unknown tokens go
// to the overflow category, which is emitted last. Empty categories are
// omitted. Every input token appears exactly once in the result, in input
// order within its bucket.
func (c *Categorizer) Categorize(tokens []string) model.SkillSet {
	buckets := make([][]string, len(c.order)+1)
	overflow := len(c.order)
	for _, tok := range tokens {
		i, ok := c.index[tok]
		if !ok {
			i = overflow
		}
		buckets[i] = append(buckets[i], tok)
	}

	set := model.SkillSet{}
	for i, b := range buckets {
		if len(b) == 0 {
			continue
		}
		name := c.other
		if i < overflow {
			name = c.order[i]
		}
		set = append(set, model.SkillCategory{Name: name, Skills: b})
	}
	return set
}

// CategorizeText parses raw as a list and categorizes the tokens.
func (c *Categorizer) CategorizeText(raw string) model.SkillSet {
	return c.Categorize(textparse.List(raw))
}
