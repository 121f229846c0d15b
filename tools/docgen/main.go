// Package main generates CLI reference documentation from the bluegem
// command tree, plus an index page linking every generated file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/csbluegem-go/cmd/bluegem/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	if err := os.MkdirAll(*output, 0o750); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTree(root, *output); err != nil {
		log.Fatalf("generating docs: %v", err)
	}

	n, err := writeIndex(*output)
	if err != nil {
		log.Fatalf("writing index: %v", err)
	}

	fmt.Printf("CLI docs generated in %s/ (%d pages)\n", *output, n)
}

// writeIndex creates a README.md in dir linking each generated command page.
// Returns the number of pages indexed.
func writeIndex(dir string) (int, error) {
	pages, err := filepath.Glob(filepath.Join(dir, "bluegem*.md"))
	if err != nil {
		return 0, err
	}
	sort.Strings(pages)

	var b strings.Builder
	b.WriteString("# bluegem CLI reference\n\n")
	for _, p := range pages {
		name := strings.TrimSuffix(filepath.Base(p), ".md")
		title := strings.ReplaceAll(name, "_", " ")
		fmt.Fprintf(&b, "- [%s](%s)\n", title, filepath.Base(p))
	}

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(b.String()), 0o600); err != nil {
		return 0, err
	}

	return len(pages), nil
}
