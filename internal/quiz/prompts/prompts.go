// Package prompts builds the natural-language instructions sent to the
// completion endpoint. One template per question type, embedded at
// build time.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/quizforge/quizforge/internal/model"
)

//go:embed templates/*.txt
var templateFS embed.FS

var templates = template.Must(template.New("prompts").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templateFS, "templates/*.txt"))

// Data holds the variables a prompt template is rendered with.
type Data struct {
	Count      int
	Context    string
	Difficulty string
	Excluded   []string
}

// Build renders the prompt for the given question type. The context is
// sanitized before rendering; everything else is embedded verbatim.
func Build(qt model.QuestionType, d Data) (string, error) {
	name := "multichoice.txt"
	if qt == model.TypeFillInBlank {
		name = "fillblank.txt"
	}

	d.Context = SanitizeContext(d.Context)

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, d); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

// SanitizeContext strips control characters that could corrupt the
// request payload. Newlines and tabs are kept.
func SanitizeContext(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
