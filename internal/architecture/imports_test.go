package architecture_test

import (
	"bufio"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type goFile struct {
	rel  string
	path string
}

func TestImportBoundaries(t *testing.T) {
	root, modulePath := moduleRoot(t)
	fset := token.NewFileSet()

	type violation struct {
		file string
		imp  string
		rule string
	}
	var violations []violation

	for _, f := range internalGoFiles(t, root) {
		disallowed := disallowedImports(modulePath, layerFor(f.rel))
		if len(disallowed) == 0 {
			continue
		}
		parsed, err := parser.ParseFile(fset, f.path, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", f.rel, err)
		}
		for _, spec := range parsed.Imports {
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			for _, bad := range disallowed {
				if strings.HasPrefix(imp, bad) {
					violations = append(violations, violation{file: f.rel, imp: imp, rule: bad})
					break
				}
			}
		}
	}

	if len(violations) > 0 {
		var b strings.Builder
		b.WriteString("import boundary violations:\n")
		for _, v := range violations {
			fmt.Fprintf(&b, "- %s imports %q (disallowed: %q)\n", v.file, v.imp, v.rule)
		}
		t.Fatal(b.String())
	}
}

// Tag links and ingredient amounts change only through the recipe aggregate,
// which owns the transaction that keeps them consistent with the recipe row.
func TestRecipeChildWritesStayInAggregate(t *testing.T) {
	root, _ := moduleRoot(t)
	fset := token.NewFileSet()
	aggregateOwned := map[string]bool{
		"ReplaceTags":      true,
		"BulkCreate":       true,
		"DeleteByRecipeID": true,
	}

	var violations []string
	for _, f := range internalGoFiles(t, root) {
		if strings.HasSuffix(f.rel, "_test.go") || strings.HasPrefix(f.rel, "internal/data/") {
			continue
		}
		parsed, err := parser.ParseFile(fset, f.path, nil, 0)
		if err != nil {
			t.Fatalf("parse %s: %v", f.rel, err)
		}
		ast.Inspect(parsed, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if ok && aggregateOwned[sel.Sel.Name] {
				violations = append(violations, fmt.Sprintf("%s:%d calls %s", f.rel, fset.Position(call.Pos()).Line, sel.Sel.Name))
			}
			return true
		})
	}
	if len(violations) > 0 {
		t.Fatalf("recipe child rows written outside the aggregate:\n%s", strings.Join(violations, "\n"))
	}
}

func layerFor(rel string) string {
	switch {
	case strings.HasPrefix(rel, "internal/platform/"):
		return "platform"
	case strings.HasPrefix(rel, "internal/domain/"):
		return "domain"
	case strings.HasPrefix(rel, "internal/data/"):
		return "data"
	case strings.HasPrefix(rel, "internal/services/"):
		return "services"
	case strings.HasPrefix(rel, "internal/http/"):
		return "http"
	default:
		return ""
	}
}

func disallowedImports(modulePath string, layer string) []string {
	internal := modulePath + "/internal/"
	switch layer {
	case "platform":
		return []string{internal + "domain", internal + "data/", internal + "services", internal + "http", internal + "app"}
	case "domain":
		return []string{internal + "platform/", internal + "data/", internal + "services", internal + "http", internal + "app"}
	case "data":
		return []string{internal + "services", internal + "http", internal + "app"}
	case "services":
		return []string{internal + "http", internal + "app"}
	case "http":
		return []string{internal + "app", internal + "data/"}
	default:
		return nil
	}
}

func internalGoFiles(t *testing.T, root string) []goFile {
	t.Helper()
	var out []goFile
	err := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, goFile{rel: filepath.ToSlash(rel), path: path})
		return nil
	})
	if err != nil {
		t.Fatalf("walk internal/: %v", err)
	}
	return out
}

func moduleRoot(t *testing.T) (string, string) {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("go.mod not found")
		}
		dir = parent
	}
	modulePath, err := readModulePath(filepath.Join(dir, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}
	return dir, modulePath
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if mp, ok := strings.CutPrefix(line, "module "); ok {
			if mp = strings.TrimSpace(mp); mp != "" {
				return mp, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
