package task

import "embed"

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the tasks table migrations
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
