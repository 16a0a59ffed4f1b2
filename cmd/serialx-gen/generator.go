package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/hengadev/errsx"

	"github.com/hengadev/serialx"
	"github.com/hengadev/serialx/internal/codegen"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
)

// Generator handles the code generation process
type Generator struct {
	config    *Config
	outputDir string
	verbose   bool
	out       io.Writer
	engine    *codegen.TemplateEngine
}

// NewGenerator creates a new Generator writing progress to out.
func NewGenerator(config *Config, outputDir string, verbose bool, out io.Writer) (*Generator, error) {
	engine, err := codegen.NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to create template engine: %w", err)
	}
	if out == nil {
		out = os.Stdout
	}
	return &Generator{
		config:    config,
		outputDir: outputDir,
		verbose:   verbose,
		out:       out,
		engine:    engine,
	}, nil
}

func (g *Generator) logf(format string, args ...any) {
	if g.verbose {
		fmt.Fprintf(g.out, format, args...)
	}
}

// Generate writes one registration file per package. Packages with invalid
// directives are reported and produce no file.
func (g *Generator) Generate(packages []string, dryRun bool) error {
	g.logf("Starting code generation for packages: %v\n", packages)
	if dryRun {
		g.logf("Running in dry-run mode\n")
	}

	var errs errsx.Map
	for _, pkgDir := range packages {
		if g.config.Skip(pkgDir) {
			g.logf("Skipping package %s (marked as skip)\n", pkgDir)
			continue
		}
		if err := g.generatePackage(pkgDir, dryRun); err != nil {
			errs.Set(pkgDir, err)
		}
	}
	if !errs.IsEmpty() {
		return errs.AsError()
	}

	fmt.Fprintln(g.out, "Code generation complete!")
	return nil
}

func (g *Generator) generatePackage(pkgDir string, dryRun bool) error {
	g.logf("Processing package: %s\n", pkgDir)

	pkg, err := codegen.DiscoverTypes(pkgDir, nil)
	if err != nil {
		return fmt.Errorf("failed to discover types: %w", err)
	}
	if problems := pkg.Errors(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(g.out, "  %s %s\n", failMark, p)
		}
		return fmt.Errorf("%d invalid directives", len(problems))
	}
	if len(pkg.Types) == 0 {
		g.logf("  No annotated types found in %s\n", pkgDir)
		return nil
	}
	g.logf("Found %d annotated types in %s\n", len(pkg.Types), pkgDir)

	data := codegen.BuildTemplateData(pkg, codegen.GenerationConfig{
		PackageAlias:     g.config.Generation.PackageAlias,
		GeneratorVersion: serialx.Version,
	})
	code, err := g.engine.GenerateCode(data)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	dir := pkgDir
	if g.outputDir != "" {
		dir = g.outputDir
	}
	outputFile := filepath.Join(dir, g.config.OutputFile(pkgDir))

	if dryRun {
		fmt.Fprintf(g.out, "Would generate: %s\n", outputFile)
		g.logf("Generated code:\n%s\n", code)
		return nil
	}

	if err := os.WriteFile(outputFile, code, 0644); err != nil {
		return fmt.Errorf("failed to write generated file %s: %w", outputFile, err)
	}
	g.logf("Generated: %s\n", outputFile)
	return nil
}

// Validate reports every directive of every package without writing files.
// It returns false when a problem was found.
func (g *Generator) Validate(packages []string) bool {
	valid := true
	for _, pkgDir := range packages {
		g.logf("Validating package: %s\n", pkgDir)

		pkg, err := codegen.DiscoverTypes(pkgDir, nil)
		if err != nil {
			fmt.Fprintf(g.out, "%s %s: %v\n", failMark, pkgDir, err)
			valid = false
			continue
		}
		if len(pkg.Types) == 0 && len(pkg.Orphans) == 0 {
			g.logf("  No annotated types found in %s\n", pkgDir)
			continue
		}

		fmt.Fprintf(g.out, "Found %d annotated types in %s:\n", len(pkg.Types), pkgDir)
		for _, t := range pkg.Types {
			fmt.Fprintf(g.out, "  %s (%s)\n", t.Name, t.SourceFile)
			for _, e := range t.ValidationErrors {
				fmt.Fprintf(g.out, "    %s %s: %s\n", failMark, t.Name, e)
			}
			for _, m := range t.Methods {
				for _, e := range m.ValidationErrors {
					fmt.Fprintf(g.out, "    %s %s.%s: %s\n", failMark, t.Name, m.Name, e)
				}
				if len(m.ValidationErrors) == 0 {
					g.logf("    %s %s.%s\n", okMark, t.Name, m.Name)
				}
			}
			if t.IsValid() {
				fmt.Fprintf(g.out, "    %s %s, prettify=%t, %d virtual fields\n", okMark, t.Config.Naming, t.Config.Prettify, len(t.Methods))
			} else {
				valid = false
			}
		}
		for _, m := range pkg.Orphans {
			fmt.Fprintf(g.out, "  %s %s.%s: receiver type has no //%s directive\n", failMark, m.Receiver, m.Name, codegen.TypeDirective)
			valid = false
		}
	}
	return valid
}
