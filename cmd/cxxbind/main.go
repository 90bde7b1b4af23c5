// Command cxxbind parses a target's public C++ headers, runs the IR
// Importer over them, and writes the resulting bindings, thunk source, and
// (optionally) the raw IR to disk. Everything in this file is peripheral
// glue around internal/importer: flag parsing, concurrent header parsing,
// diagnostics printing, and output-file bookkeeping.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"cxxbind/internal/config"
	"cxxbind/internal/cxxast"
	"cxxbind/internal/emitter"
	"cxxbind/internal/importer"
	"cxxbind/internal/ir"
	"cxxbind/internal/lifetime"
	"cxxbind/internal/resolve"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	rootCmd = &cobra.Command{
		Use:   "cxxbind",
		Short: "Generate target-language bindings from a set of C++ headers",
		RunE:  runGenerate,
	}

	rsOut             string
	ccOut             string
	irOut             string
	publicHeaders     []string
	targetsAndHeaders string
	doNothing         bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("cxxbind: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&rsOut, "rs_out", "", "path to write the generated target-language bindings (required)")
	rootCmd.Flags().StringVar(&ccOut, "cc_out", "", "path to write the generated C++ thunk source (required)")
	rootCmd.Flags().StringVar(&irOut, "ir_out", "", "optional path to write the pretty-printed IR as JSON")
	rootCmd.Flags().StringSliceVar(&publicHeaders, "public_headers", nil, "public headers belonging to the current target (required)")
	rootCmd.Flags().StringVar(&targetsAndHeaders, "targets_and_headers", "", "path to a JSON file of {t, h} target/header mappings (required)")
	rootCmd.Flags().BoolVar(&doNothing, "do_nothing", false, "write empty sentinel output files and exit without importing anything")

	_ = rootCmd.MarkFlagRequired("rs_out")
	_ = rootCmd.MarkFlagRequired("cc_out")
	_ = rootCmd.MarkFlagRequired("targets_and_headers")
}

// targetHeaders is one entry of the --targets_and_headers JSON array.
type targetHeaders struct {
	Target  ir.TargetLabel `json:"t"`
	Headers []string       `json:"h"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("cxxbind.yaml")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Diagnostics.Color {
		color.NoColor = true
	}

	outputs := []string{rsOut, ccOut}
	if irOut != "" {
		outputs = append(outputs, irOut)
	}

	if doNothing {
		return writeSentinelFiles(outputs)
	}

	if len(publicHeaders) == 0 {
		return fmt.Errorf("--public_headers must be non-empty")
	}

	entries, err := loadTargetsAndHeaders(targetsAndHeaders)
	if err != nil {
		return err
	}

	byHeader := headerTargetMap(entries)
	currentTarget, err := resolveCurrentTarget(publicHeaders, byHeader)
	if err != nil {
		return err
	}

	ast := cxxast.NewASTContext()
	fileIDs := make([]cxxast.FileID, len(publicHeaders))
	for i, h := range publicHeaders {
		fileIDs[i] = ast.SourceMgr.AddEntryFile(h)
	}

	tus, err := parseHeaders(ast, publicHeaders, fileIDs)
	if err != nil {
		return fail(outputs, err)
	}

	owner := resolve.NewOwnerResolver(ast.SourceMgr, byHeader)
	imp := importer.New(ast, owner, lifetime.NoLifetimesOracle{}, currentTarget)
	items := importer.NewWalker(imp).Walk(tus)

	reportDiagnostics(items, cfg)
	if cfg.Diagnostics.FailOnUnsupported {
		if n := countUnsupported(items); n > 0 {
			return fail(outputs, fmt.Errorf("%d unsupported item(s), failing per cxxbind.yaml diagnostics.fail_on_unsupported", n))
		}
	}

	targetSrc, ccSrc := emitter.Emit(items)
	if err := os.WriteFile(rsOut, []byte(targetSrc), 0o644); err != nil {
		return fail(outputs, err)
	}
	if err := os.WriteFile(ccOut, []byte(ccSrc), 0o644); err != nil {
		return fail(outputs, err)
	}
	if irOut != "" {
		data, err := marshalIR(items)
		if err != nil {
			return fail(outputs, err)
		}
		if err := os.WriteFile(irOut, data, 0o644); err != nil {
			return fail(outputs, err)
		}
	}
	return nil
}

// parseHeaders reads every public header concurrently, parsing each into
// the shared ASTContext one at a time (ParseFile mutates the context's
// DeclID space and comment table), then hands the results back in the
// caller's original header order so the single-threaded Importer sees a
// deterministic translation-unit sequence regardless of which goroutine
// finishes first.
func parseHeaders(ast *cxxast.ASTContext, headers []string, fileIDs []cxxast.FileID) ([]*cxxast.TranslationUnitDecl, error) {
	tus := make([]*cxxast.TranslationUnitDecl, len(headers))
	var mu sync.Mutex
	g, _ := errgroup.WithContext(context.Background())
	for i := range headers {
		i := i
		g.Go(func() error {
			source, err := os.ReadFile(headers[i])
			if err != nil {
				return fmt.Errorf("reading %s: %w", headers[i], err)
			}
			mu.Lock()
			tu, err := ast.ParseFile(headers[i], source, fileIDs[i])
			mu.Unlock()
			if err != nil {
				return err
			}
			tus[i] = tu
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tus, nil
}

func loadTargetsAndHeaders(path string) ([]targetHeaders, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading --targets_and_headers: %w", err)
	}
	var entries []targetHeaders
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing --targets_and_headers: %w", err)
	}
	return entries, nil
}

func headerTargetMap(entries []targetHeaders) resolve.HeaderTargetMap {
	m := make(resolve.HeaderTargetMap)
	for _, e := range entries {
		for _, h := range e.Headers {
			m[normalizeHeader(h)] = e.Target
		}
	}
	return m
}

func normalizeHeader(h string) string {
	return strings.TrimPrefix(h, "./")
}

// resolveCurrentTarget implements the CLI's "all public headers must belong
// to the same owning target or the program aborts" contract from §6.
func resolveCurrentTarget(headers []string, byHeader resolve.HeaderTargetMap) (ir.TargetLabel, error) {
	var current ir.TargetLabel
	for i, h := range headers {
		target, ok := byHeader[normalizeHeader(h)]
		if !ok {
			return "", fmt.Errorf("public header %q is not present in --targets_and_headers", h)
		}
		if i == 0 {
			current = target
			continue
		}
		if target != current {
			return "", fmt.Errorf("public headers belong to different targets: %q and %q", current, target)
		}
	}
	return current, nil
}

func countUnsupported(items []ir.Item) int {
	n := 0
	for _, item := range items {
		if _, ok := item.(*ir.UnsupportedItem); ok {
			n++
		}
	}
	return n
}

func reportDiagnostics(items []ir.Item, cfg *config.Config) {
	warn := color.New(color.FgYellow)
	info := color.New(color.FgCyan)
	for _, item := range items {
		switch v := item.(type) {
		case *ir.UnsupportedItem:
			warn.Fprintf(os.Stderr, "unsupported: %s: %s (%s:%d:%d)\n",
				v.Name, v.Message, v.SourceLoc.Filename, v.SourceLoc.Line, v.SourceLoc.Column)
		case *ir.Func:
			if cfg.Diagnostics.Verbose {
				info.Fprintf(os.Stderr, "imported func %s -> %s\n", v.Name.Name, v.MangledName)
			}
		case *ir.Record:
			if cfg.Diagnostics.Verbose {
				info.Fprintf(os.Stderr, "imported record %s (size=%d align=%d)\n", v.Identifier, v.SizeBytes, v.AlignmentBytes)
			}
		}
	}
}

// marshalIR renders items as the two-space-indented, tagged-variant JSON
// document §6 mandates: each item is wrapped in a single-key object whose
// key names the variant.
func marshalIR(items []ir.Item) ([]byte, error) {
	tagged := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		kind, value := taggedItem(item)
		inner, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		wrapped, err := json.Marshal(map[string]json.RawMessage{kind: inner})
		if err != nil {
			return nil, err
		}
		tagged = append(tagged, wrapped)
	}
	doc := struct {
		Items []json.RawMessage `json:"items"`
	}{Items: tagged}
	return json.MarshalIndent(doc, "", "  ")
}

func taggedItem(item ir.Item) (string, ir.Item) {
	switch item.(type) {
	case *ir.Func:
		return "Func", item
	case *ir.Record:
		return "Record", item
	case *ir.TypeAlias:
		return "TypeAlias", item
	case *ir.UnsupportedItem:
		return "UnsupportedItem", item
	case ir.Comment:
		return "Comment", item
	default:
		return "Unknown", item
	}
}

func writeSentinelFiles(outputs []string) error {
	for _, p := range outputs {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// fail removes any partial output files before propagating err, matching
// §6's "on failure any partial output files are removed" contract.
func fail(outputs []string, err error) error {
	for _, p := range outputs {
		os.Remove(p)
	}
	return err
}
