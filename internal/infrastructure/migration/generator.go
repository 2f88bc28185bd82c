package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/keshevplus/leadhub/internal/shared/logger"
)

var (
	migrationFilePattern = regexp.MustCompile(`^(\d+)_.+\.(up|down)\.sql$`)
	migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// Generator handles creation of new golang-migrate file pairs
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log,
	}
}

// CreateMigration creates the next NNNNNN_name.up.sql / .down.sql pair and
// returns their paths.
func (g *Generator) CreateMigration(name string) error {
	_, _, err := g.create(name)
	return err
}

func (g *Generator) create(name string) (string, string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !migrationNamePattern.MatchString(name) {
		return "", "", fmt.Errorf("invalid migration name %q: use lowercase letters, digits and underscores", name)
	}

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	version, err := g.nextVersion()
	if err != nil {
		return "", "", err
	}

	base := filepath.Join(g.scriptsPath, fmt.Sprintf("%06d_%s", version, name))
	upFilePath := base + ".up.sql"
	downFilePath := base + ".down.sql"

	if err := writeNewFile(upFilePath, fmt.Sprintf("-- %s\n", name)); err != nil {
		return "", "", fmt.Errorf("failed to create up migration file: %w", err)
	}
	if err := writeNewFile(downFilePath, fmt.Sprintf("-- rollback %s\n", name)); err != nil {
		return "", "", fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created successfully",
		"up_file", upFilePath,
		"down_file", downFilePath)

	return upFilePath, downFilePath, nil
}

// nextVersion is one past the highest version in scriptsPath.
func (g *Generator) nextVersion() (int, error) {
	entries, err := os.ReadDir(g.scriptsPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read scripts directory: %w", err)
	}

	highest := 0
	for _, e := range entries {
		m := migrationFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if v, err := strconv.Atoi(m[1]); err == nil && v > highest {
			highest = v
		}
	}
	return highest + 1, nil
}

func writeNewFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
