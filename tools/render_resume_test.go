package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleForm = `{
  "personalInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@x.com"},
  "education": [{"school": "MIT", "degree": "BS"}],
  "skills": "Go, Docker"
}`

func writeForm(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender_HTMLToStdout(t *testing.T) {
	renderOutFile, renderFormat = "", "html"
	out, _, err := execute(t, "render", "--form", writeForm(t, sampleForm), "--template", "classic", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "resume-content")
	assert.Contains(t, out, "Jane")
}

func TestRender_HTMLToFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.html")
	_, _, err := execute(t, "render", "-f", writeForm(t, sampleForm), "-o", dst, "--format", "html")
	require.NoError(t, err)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Jane")
	renderOutFile = ""
}

func TestValidate_ReportsFields(t *testing.T) {
	_, errOut, err := execute(t, "validate", "-f", writeForm(t, `{"personalInfo":{"firstName":"Jane"}}`))
	require.Error(t, err)
	assert.Contains(t, errOut, "lastName")
	assert.Contains(t, errOut, "skills")
}

func TestTemplates_Lists(t *testing.T) {
	out, _, err := execute(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "classic")
	assert.Contains(t, out, "tabular")
}
