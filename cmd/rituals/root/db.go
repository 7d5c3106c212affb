package root

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ritualloop/internal/engine"
	"ritualloop/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(db), cleanup, nil
}

// resolveDay turns the --date flag into the engine's "today" reference,
// defaulting to the local calendar day.
func resolveDay(flag string) (time.Time, error) {
	if flag == "" {
		return engine.ParseDay(engine.FormatDay(time.Now()))
	}
	day, err := engine.ParseDay(flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", flag)
	}
	return day, nil
}
