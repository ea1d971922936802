package application

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// MigrationManager executes module schema files registered at startup.
// Schemas are plain DDL with IF NOT EXISTS guards, applied in registration
// order, each module's files sorted by path.
type MigrationManager interface {
	RegisterSchema(files *embed.FS)
	Run(ctx context.Context) error
}

func NewMigrationManager(pool *pgxpool.Pool, logger *logrus.Logger) MigrationManager {
	return &migrationManager{pool: pool, logger: logger}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	logger  *logrus.Logger
	schemas []*embed.FS
}

func (m *migrationManager) RegisterSchema(files *embed.FS) {
	m.schemas = append(m.schemas, files)
}

func (m *migrationManager) Run(ctx context.Context) error {
	for _, schema := range m.schemas {
		paths, err := listSQLFiles(schema)
		if err != nil {
			return err
		}
		for _, path := range paths {
			ddl, err := schema.ReadFile(path)
			if err != nil {
				return err
			}
			if m.logger != nil {
				m.logger.WithField("schema", path).Debug("applying schema")
			}
			if _, err := m.pool.Exec(ctx, string(ddl)); err != nil {
				return err
			}
		}
	}
	return nil
}

func listSQLFiles(fsys *embed.FS) ([]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
