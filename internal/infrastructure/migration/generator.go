package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

var migrationNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Generator writes new, empty migration files into the source tree. It
// creates the goose file and the matching golang-migrate pair so both
// strategies stay in step.
type Generator struct {
	scriptsRoot string
	now         func() time.Time
	logger      logger.Interface
}

// NewGenerator takes the on-disk path of the scripts directory.
func NewGenerator(scriptsRoot string, log logger.Interface) *Generator {
	return &Generator{
		scriptsRoot: scriptsRoot,
		now:         time.Now,
		logger:      log.With("component", "migration.generator"),
	}
}

// CreateMigration returns the paths of the files it wrote.
func (g *Generator) CreateMigration(name string) ([]string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !migrationNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid migration name %q: use lower case letters, digits and underscores", name)
	}

	created := g.now()
	version := created.UTC().Format("20060102150405")

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(g.scriptsRoot, "goose", version+"_"+name+".sql"), gooseTemplate(name, created)},
		{filepath.Join(g.scriptsRoot, "migrate", version+"_"+name+".up.sql"), upTemplate(name, created)},
		{filepath.Join(g.scriptsRoot, "migrate", version+"_"+name+".down.sql"), downTemplate(name, created)},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create scripts directory: %w", err)
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write migration file: %w", err)
		}
		paths = append(paths, f.path)
	}

	g.logger.Infow("migration files created successfully",
		"name", name,
		"version", version,
		"files", paths)

	return paths, nil
}

func gooseTemplate(name string, created time.Time) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up

-- +goose Down
`, name, created.Format(time.DateTime))
}

func upTemplate(name string, created time.Time) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s
`, name, created.Format(time.DateTime))
}

func downTemplate(name string, created time.Time) string {
	return fmt.Sprintf(`-- Rollback Migration: %s
-- Created: %s
`, name, created.Format(time.DateTime))
}
