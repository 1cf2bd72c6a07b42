package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/sitelog/internal/classify"
)

type classifyJSON struct {
	Title  string `json:"title"`
	Site   string `json:"site"`
	Source string `json:"source"`
}

// Execute implements the go-flags Commander interface for ClassifyCommand.
func (c *ClassifyCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithClassifier(cfg.Classifier())
}

// executeWithClassifier prints one line per title (used by tests).
func (c *ClassifyCommand) executeWithClassifier(cl *classify.Classifier) error {
	if len(c.Args.Titles) == 0 {
		return fmt.Errorf("at least one title is required")
	}

	results := make([]classifyJSON, 0, len(c.Args.Titles))
	for _, title := range c.Args.Titles {
		site, source := cl.Match(title)
		results = append(results, classifyJSON{Title: title, Site: site, Source: string(source)})
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		fmt.Printf("%-20s %-10s %q\n", r.Site, r.Source, r.Title)
	}
	return nil
}
