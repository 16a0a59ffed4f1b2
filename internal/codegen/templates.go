package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/hengadev/serialx/internal/naming"
)

// ImportPath is the import path of the package generated code registers with.
const ImportPath = "github.com/hengadev/serialx"

// DefaultOutputFile is the name of the generated file in each package.
const DefaultOutputFile = "serialx_gen.go"

// GenerationConfig controls the rendering of generated files.
type GenerationConfig struct {
	PackageAlias     string
	GeneratorVersion string
}

// TemplateData is the input of the registration template.
type TemplateData struct {
	PackageName      string
	PackagePath      string
	SourceFiles      []string
	GeneratorVersion string
	Alias            string
	ImportPath       string
	Types            []TemplateType
}

type TemplateType struct {
	Name     string
	Naming   string
	Prettify bool
	Methods  []TemplateMethod
}

type TemplateMethod struct {
	Name       string
	CustomName string
}

const registrationTemplate = `// Code generated by serialx-gen {{.GeneratorVersion}}. DO NOT EDIT.
// Source: {{join .SourceFiles ", "}}

package {{.PackageName}}

import {{.Alias}} "{{.ImportPath}}"

func init() {
{{- range .Types}}
	{{$.Alias}}.MustRegister[{{.Name}}](
		{{$.Alias}}.TypeConfig{Naming: {{$.Alias}}.{{.Naming}}, Prettify: {{.Prettify}}},
	{{- range .Methods}}
		{{$.Alias}}.Method({{printf "%q" .Name}}, {{printf "%q" .CustomName}}),
	{{- end}}
	)
{{- end}}
}
`

// TemplateEngine renders registration files.
type TemplateEngine struct {
	tmpl *template.Template
}

func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("registration").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(registrationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse registration template: %w", err)
	}
	return &TemplateEngine{tmpl: tmpl}, nil
}

// GenerateCode renders data and formats the result.
func (e *TemplateEngine) GenerateCode(data TemplateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(DefaultOutputFile, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}
	return formatted, nil
}

// BuildTemplateData turns the valid types of pkg into template input.
// Invalid types are left out.
func BuildTemplateData(pkg *PackageInfo, cfg GenerationConfig) TemplateData {
	alias := cfg.PackageAlias
	if alias == "" {
		alias = "serialx"
	}

	data := TemplateData{
		PackageName:      pkg.Name,
		PackagePath:      pkg.Path,
		GeneratorVersion: cfg.GeneratorVersion,
		Alias:            alias,
		ImportPath:       ImportPath,
	}

	seen := make(map[string]bool)
	for _, t := range pkg.Types {
		if !t.IsValid() {
			continue
		}
		if !seen[t.SourceFile] {
			seen[t.SourceFile] = true
			data.SourceFiles = append(data.SourceFiles, t.SourceFile)
		}

		tt := TemplateType{
			Name:     t.Name,
			Naming:   conventionIdent(t.Config.Naming),
			Prettify: t.Config.Prettify,
		}
		for _, m := range t.Methods {
			tt.Methods = append(tt.Methods, TemplateMethod{Name: m.Name, CustomName: m.CustomName})
		}
		data.Types = append(data.Types, tt)
	}
	return data
}

// conventionIdent is the exported identifier of c in the serialx package.
func conventionIdent(c naming.Convention) string {
	switch c {
	case naming.PascalCase:
		return "PascalCase"
	case naming.SnakeCase:
		return "SnakeCase"
	case naming.KebabCase:
		return "KebabCase"
	default:
		return "CamelCase"
	}
}
