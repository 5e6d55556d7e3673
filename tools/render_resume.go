// Command render_resume renders a saved resume form to HTML or PDF without
// running the server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adityarajsrv/CareerQuill/internal/builder"
	"github.com/adityarajsrv/CareerQuill/internal/export"
	"github.com/adityarajsrv/CareerQuill/internal/model"
	"github.com/adityarajsrv/CareerQuill/internal/render"
	infra "github.com/adityarajsrv/CareerQuill/pkg/infrastructure"
	"github.com/adityarajsrv/CareerQuill/pkg/logger"
)

var (
	renderFormFile string
	renderTemplate string
	renderOutFile  string
	renderFormat   string
	renderChrome   string
	renderTimeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "render_resume",
	Short: "Render resume forms to HTML or PDF",
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Validate a form JSON file and render it with a template",
	RunE:  runRender,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report validation errors for a form JSON file",
	RunE:  runValidate,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, info := range render.DefaultRegistry().Gallery() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-22s columns=%d photo=%t\n", info.ID, info.Name, info.Columns, info.Photo)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormFile, "form", "f", "", "Path to form JSON file (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", render.DefaultTemplate, "Template id")
	renderCmd.Flags().StringVarP(&renderOutFile, "out", "o", "", "Output path (defaults to stdout for html, First_Last_Resume.pdf for pdf)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "html", "Output format: html or pdf")
	renderCmd.Flags().StringVar(&renderChrome, "chrome", os.Getenv("CHROME_PATH"), "Chrome executable for pdf output")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", export.DefaultTimeout, "Export timeout")
	if err := renderCmd.MarkFlagRequired("form"); err != nil {
		panic(fmt.Sprintf("failed to mark form flag as required: %v", err))
	}

	validateCmd.Flags().StringVarP(&renderFormFile, "form", "f", "", "Path to form JSON file (required)")
	if err := validateCmd.MarkFlagRequired("form"); err != nil {
		panic(fmt.Sprintf("failed to mark form flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd, validateCmd, templatesCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readForm(path string) (model.FormState, error) {
	var form model.FormState
	b, err := os.ReadFile(path)
	if err != nil {
		return form, fmt.Errorf("failed to read form file: %w", err)
	}
	if err := json.Unmarshal(b, &form); err != nil {
		return form, fmt.Errorf("failed to unmarshal form JSON: %w", err)
	}
	form.Normalize()
	return form, nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	form, err := readForm(renderFormFile)
	if err != nil {
		return err
	}
	errs := builder.Validate(form)
	if len(errs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "form is valid")
		return nil
	}
	printErrors(cmd.ErrOrStderr(), errs)
	return fmt.Errorf("%d field(s) need attention", len(errs))
}

func printErrors(w io.Writer, errs builder.ValidationErrors) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, errs[k])
	}
}

func runRender(cmd *cobra.Command, _ []string) error {
	form, err := readForm(renderFormFile)
	if err != nil {
		return err
	}
	tpl, err := render.DefaultRegistry().Lookup(renderTemplate)
	if err != nil {
		return err
	}
	doc, err := builder.Generate(form)
	if err != nil {
		var verr *builder.ValidationError
		if errors.As(err, &verr) {
			printErrors(cmd.ErrOrStderr(), verr.Errors)
		}
		return err
	}
	html, err := render.NewHTMLRenderer()
	if err != nil {
		return err
	}
	page, err := html.RenderString(tpl.Render(doc, render.Options{}))
	if err != nil {
		return err
	}

	switch strings.ToLower(renderFormat) {
	case "html":
		if renderOutFile == "" {
			_, err := io.WriteString(cmd.OutOrStdout(), page)
			return err
		}
		return writeOut(cmd, renderOutFile, []byte(page))
	case "pdf":
		exp := export.New(infra.NewChromeLauncher(renderChrome),
			export.WithTimeout(renderTimeout),
			export.WithLogger(logger.New("info", "text")))
		f, err := exp.Raster(context.Background(), page, export.FileName(doc))
		if err != nil {
			return err
		}
		out := renderOutFile
		if out == "" {
			out = f.Name
		}
		return writeOut(cmd, out, f.Data)
	default:
		return fmt.Errorf("unknown format %q (want html or pdf)", renderFormat)
	}
}

func writeOut(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
