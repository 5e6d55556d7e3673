package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/adityarajsrv/CareerQuill/templates"
)

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func documentSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(templates.ResumeSchema))
	})
	return schema, schemaErr
}

// ValidateDocument checks a built document against resume.schema.json.
func ValidateDocument(doc *ResumeDocument) error {
	if doc == nil {
		return fmt.Errorf("schema validation failed: nil document")
	}
	return validate(gojsonschema.NewGoLoader(doc))
}

func validate(doc gojsonschema.JSONLoader) error {
	s, err := documentSchema()
	if err != nil {
		return err
	}
	res, err := s.Validate(doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
