package codegen

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/hengadev/serialx/internal/config"
)

// Directive prefixes recognized in doc comments.
const (
	TypeDirective   = "serialx:type"
	MethodDirective = "serialx:method"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// PackageInfo is the result of scanning one package for directives.
type PackageInfo struct {
	Name  string
	Path  string
	Dir   string
	Types []TypeInfo
	// Methods carrying a directive whose receiver type has none
	Orphans []MethodInfo
}

// TypeInfo describes a type annotated with //serialx:type.
type TypeInfo struct {
	Name             string
	SourceFile       string
	Options          string // raw directive arguments
	Config           config.TypeConfig
	IsStruct         bool
	Methods          []MethodInfo
	ValidationErrors []string
}

// MethodInfo describes a method annotated with //serialx:method.
type MethodInfo struct {
	Name             string
	CustomName       string
	Receiver         string
	PointerReceiver  bool
	SourceFile       string
	ValidationErrors []string

	pos token.Pos
}

// IsValid reports whether the type and all its methods passed validation.
func (t TypeInfo) IsValid() bool {
	if len(t.ValidationErrors) > 0 {
		return false
	}
	for _, m := range t.Methods {
		if len(m.ValidationErrors) > 0 {
			return false
		}
	}
	return true
}

// Errors lists every validation error of the package, prefixed by location.
func (p *PackageInfo) Errors() []string {
	var errs []string
	for _, t := range p.Types {
		for _, e := range t.ValidationErrors {
			errs = append(errs, fmt.Sprintf("%s: type %s: %s", t.SourceFile, t.Name, e))
		}
		for _, m := range t.Methods {
			for _, e := range m.ValidationErrors {
				errs = append(errs, fmt.Sprintf("%s: method %s.%s: %s", m.SourceFile, m.Receiver, m.Name, e))
			}
		}
	}
	for _, m := range p.Orphans {
		errs = append(errs, fmt.Sprintf("%s: method %s.%s: receiver type has no //%s directive", m.SourceFile, m.Receiver, m.Name, TypeDirective))
	}
	return errs
}

// DiscoveryConfig holds configuration for directive discovery.
type DiscoveryConfig struct {
	// BuildFlags are passed to the go command when loading packages
	BuildFlags []string
}

// DiscoverTypes loads the package in dir and collects every annotated type
// and method, in source order.
func DiscoverTypes(dir string, config *DiscoveryConfig) (*PackageInfo, error) {
	if config == nil {
		config = &DiscoveryConfig{}
	}

	cfg := &packages.Config{
		Mode:       LoadMode,
		Dir:        dir,
		BuildFlags: config.BuildFlags,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %s: %w", dir, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d", dir, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors)
	}

	info := &PackageInfo{
		Name: pkg.Name,
		Path: pkg.PkgPath,
		Dir:  dir,
	}

	index := make(map[string]int)
	var methods []MethodInfo

	for _, file := range sortedFiles(pkg) {
		fileName := filepath.Base(pkg.Fset.Position(file.Pos()).Filename)

		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}
					args, ok := directiveArgs(doc, TypeDirective)
					if !ok {
						continue
					}
					t := analyzeType(pkg, fileName, ts, args)
					index[t.Name] = len(info.Types)
					info.Types = append(info.Types, t)
				}
			case *ast.FuncDecl:
				if d.Recv == nil {
					continue
				}
				args, ok := directiveArgs(d.Doc, MethodDirective)
				if !ok {
					continue
				}
				methods = append(methods, analyzeMethod(pkg, fileName, d, args))
			}
		}
	}

	sort.SliceStable(methods, func(i, j int) bool { return methods[i].pos < methods[j].pos })
	for _, m := range methods {
		i, ok := index[m.Receiver]
		if !ok {
			info.Orphans = append(info.Orphans, m)
			continue
		}
		info.Types[i].Methods = append(info.Types[i].Methods, m)
	}
	for i := range info.Types {
		info.Types[i].ValidationErrors = append(info.Types[i].ValidationErrors,
			validateMethodNames(info.Types[i].Methods)...)
	}

	return info, nil
}

// sortedFiles returns the syntax trees ordered by file name so that
// directive order does not depend on the loader.
func sortedFiles(pkg *packages.Package) []*ast.File {
	files := append([]*ast.File(nil), pkg.Syntax...)
	sort.SliceStable(files, func(i, j int) bool {
		return pkg.Fset.Position(files[i].Pos()).Filename < pkg.Fset.Position(files[j].Pos()).Filename
	})
	return files
}

func analyzeType(pkg *packages.Package, fileName string, ts *ast.TypeSpec, args string) TypeInfo {
	t := TypeInfo{
		Name:       ts.Name.Name,
		SourceFile: fileName,
		Options:    args,
	}

	if obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
		_, t.IsStruct = obj.Type().Underlying().(*types.Struct)
	}

	t.Config, t.ValidationErrors = NewDirectiveValidator().ValidateType(t, ts)
	return t
}

func analyzeMethod(pkg *packages.Package, fileName string, fd *ast.FuncDecl, args string) MethodInfo {
	m := MethodInfo{
		Name:       fd.Name.Name,
		CustomName: args,
		SourceFile: fileName,
		pos:        fd.Pos(),
	}
	m.Receiver, m.PointerReceiver = receiverName(fd.Recv.List[0].Type)

	var sig *types.Signature
	if fn, ok := pkg.TypesInfo.Defs[fd.Name].(*types.Func); ok {
		sig, _ = fn.Type().(*types.Signature)
	}
	m.ValidationErrors = NewDirectiveValidator().ValidateMethod(m, sig)
	return m
}

// receiverName strips pointers and type parameters from a receiver type.
func receiverName(expr ast.Expr) (name string, pointer bool) {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			pointer = true
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name, pointer
		default:
			return getTypeString(expr), pointer
		}
	}
}

// getTypeString converts an ast.Expr to its string representation
func getTypeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.ArrayType:
		return "[]" + getTypeString(t.Elt)
	case *ast.StarExpr:
		return "*" + getTypeString(t.X)
	case *ast.SelectorExpr:
		return getTypeString(t.X) + "." + t.Sel.Name
	default:
		return "unknown"
	}
}

// directiveArgs finds "//serialx:<name> args" in a comment group. The
// directive must start the comment line, with or without a space after //.
func directiveArgs(doc *ast.CommentGroup, directive string) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		if text == c.Text {
			// block comments carry no directives
			continue
		}
		text = strings.TrimSpace(text)
		if text == directive {
			return "", true
		}
		if rest, ok := strings.CutPrefix(text, directive); ok && (rest[0] == ' ' || rest[0] == '\t') {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}
