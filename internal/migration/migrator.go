package migration

import "context"

// Migrator prepares the run history schema
type Migrator interface {
	Run(ctx context.Context) error
}
