package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable_EveryUpHasDown(t *testing.T) {
	names, err := Available()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups[strings.TrimSuffix(n, ".up.sql")] = true
		case strings.HasSuffix(n, ".down.sql"):
			downs[strings.TrimSuffix(n, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %q", n)
		}
	}
	assert.Equal(t, ups, downs)
	assert.True(t, ups["000001_init"])
}

func TestInitMigration_CreatesLedgerTables(t *testing.T) {
	body, err := migrationFiles.ReadFile("sql/000001_init.up.sql")
	require.NoError(t, err)

	for _, table := range []string{"customers", "transactions", "inventory_items"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.NotContains(t, strings.ToUpper(string(body)), "REFERENCES")
}
