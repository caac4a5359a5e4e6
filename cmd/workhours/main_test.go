package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhours/internal/storage"
	"github.com/workhours/internal/tracker"
)

func TestCleanupAfterFailedCommand(t *testing.T) {
	d, err := storage.New(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	db = d
	toaster = tracker.NewToaster(nil)
	t.Cleanup(func() {
		db = nil
		toaster = nil
	})

	// A failed save leaves an error notification with a pending timer.
	toaster.Notify(tracker.KindError, "End time must be after start time.", time.Minute)

	cleanup()

	_, shown := toaster.Current()
	assert.False(t, shown)
	assert.Nil(t, db)
	_, _, err = d.Load(tracker.NamespaceDays)
	assert.Error(t, err, "database is closed")

	// A second call is harmless.
	cleanup()
}
