// Package main generates the markdown reference for leaplint: one page per
// lint rule, the CLI reference and the configuration reference.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=rules -outdir=docs/rules
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: rules, cli, config, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generators maps a -gen value to its generator and default output
// directory below docs/.
var generators = map[string]struct {
	run    func(outDir string) error
	subdir string
}{
	"rules":  {generateRuleDocs, "rules"},
	"cli":    {generateCLIDocs, "cli"},
	"config": {generateConfigDocs, ""},
}

func main() {
	flag.Parse()

	if _, ok := generators[*genFlag]; !ok && *genFlag != "all" {
		log.Fatalf("unknown -gen value: %s (use: rules, cli, config, all)", *genFlag)
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	names := []string{*genFlag}
	if *genFlag == "all" {
		names = []string{"rules", "cli", "config"}
	}
	for _, name := range names {
		gen := generators[name]
		outDir := *outDirFlag
		if outDir == "" || *genFlag == "all" {
			outDir = filepath.Join(projectRoot, "docs", gen.subdir)
		}
		if err := gen.run(outDir); err != nil {
			log.Fatalf("failed to generate %s docs: %v", name, err)
		}
	}

	log.Println("Done!")
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
