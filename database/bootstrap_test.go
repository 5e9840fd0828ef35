package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"olivia/entities"
)

func TestOpenMigratesAndIsReentrant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, Ping(db))

	for _, tbl := range []string{"clothing_items", "outfits", "outfit_usage_events", "user_profiles", "chat_usages"} {
		require.True(t, db.Migrator().HasTable(tbl), tbl)
	}
	require.True(t, db.Migrator().HasIndex(&entities.OutfitUsageEvent{}, usageWindowIndex))

	// second open over the same file must not try to recreate the index
	db2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, Ping(db2))
}
