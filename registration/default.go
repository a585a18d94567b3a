package registration

import (
	"sync"

	"exim/database"
	"exim/storage"
)

var (
	defaultOrch *Orchestrator
	defaultOnce sync.Once
)

// Default returns the process-wide orchestrator bound to the global database
// and the configured storage. All controllers share it so the per-user
// submission locks actually serialize.
func Default() *Orchestrator {
	defaultOnce.Do(func() {
		defaultOrch = NewOrchestrator(database.Database.Db, storage.New())
	})
	return defaultOrch
}
