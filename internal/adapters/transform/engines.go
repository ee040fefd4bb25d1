package transform

import (
	"context"
	"path/filepath"
	"strings"
	"text/template"

	"go.trai.ch/zerr"
)

const (
	// TemplateEngineName names the text/template engine.
	TemplateEngineName = "template"
	// PassthroughEngineName names the engine that returns its input unchanged.
	PassthroughEngineName = "passthrough"
)

// Input is what an engine receives.
type Input struct {
	// Path is the absolute path of the source file.
	Path string
	// Text is the output of the previous engine, or the file contents.
	Text string
}

// Engine processes source text.
type Engine interface {
	Render(ctx context.Context, in Input) (string, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, in Input) (string, error)

// Render calls f.
func (f EngineFunc) Render(ctx context.Context, in Input) (string, error) {
	return f(ctx, in)
}

// Lookup returns the built-in engine with the given name.
func Lookup(name string) (Engine, bool) {
	switch name {
	case TemplateEngineName:
		return TemplateEngine{}, true
	case PassthroughEngineName:
		return PassthroughEngine{}, true
	default:
		return nil, false
	}
}

// DefaultEngines returns the extension mapping used when the configuration declares none.
func DefaultEngines() map[string]string {
	return map[string]string{
		"tmpl":   TemplateEngineName,
		"coffee": PassthroughEngineName,
	}
}

// PassthroughEngine returns its input unchanged. It stands in for compilers
// whose output equals their input for the sources stitch handles.
type PassthroughEngine struct{}

// Render returns in.Text.
func (PassthroughEngine) Render(_ context.Context, in Input) (string, error) {
	return in.Text, nil
}

// TemplateEngine renders the source as a text/template.
//
// Available fields:
//
//	{{ .File }}  absolute path of the source file
//	{{ .Dir }}   directory containing the source file
//	{{ .Name }}  base name of the source file
type TemplateEngine struct{}

type templateData struct {
	File string
	Dir  string
	Name string
}

// Render executes in.Text as a template.
func (TemplateEngine) Render(_ context.Context, in Input) (string, error) {
	tmpl, err := template.New(filepath.Base(in.Path)).Option("missingkey=error").Parse(in.Text)
	if err != nil {
		return "", zerr.Wrap(err, "failed to parse template")
	}

	var out strings.Builder
	err = tmpl.Execute(&out, templateData{
		File: in.Path,
		Dir:  filepath.Dir(in.Path),
		Name: filepath.Base(in.Path),
	})
	if err != nil {
		return "", zerr.Wrap(err, "failed to execute template")
	}

	return out.String(), nil
}
