package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T, name string, profile DatabaseProfile) *DB {
	t.Helper()
	db, err := New(Config{
		Driver:  DriverSQLite,
		DSN:     "file:" + name + "?mode=memory&cache=shared",
		Profile: profile,
		Name:    name,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_DefaultsAndAccessors(t *testing.T) {
	db := openMemory(t, "dbtest_defaults", ProfileStandard)

	assert.Equal(t, "dbtest_defaults", db.Name())
	assert.Equal(t, DriverSQLite, db.Driver())
	assert.Equal(t, ProfileStandard, db.Profile())
	assert.NotNil(t, db.Conn())
	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{Driver: DriverSQLite, Name: "empty"})
	assert.Error(t, err)

	_, err = New(Config{Driver: "oracle", DSN: "x", Name: "bad"})
	assert.Error(t, err)

	_, err = New(Config{Driver: DriverSQLite, DSN: "/nonexistent/dir/ecoledger.db", Name: "missing"})
	assert.Error(t, err)
}

func TestBuildSQLiteConnectionString(t *testing.T) {
	ro := buildSQLiteConnectionString("/tmp/a.db", ProfileReadOnly)
	assert.Contains(t, ro, "/tmp/a.db?_pragma=busy_timeout(5000)")
	assert.Contains(t, ro, "query_only(1)")

	std := buildSQLiteConnectionString("file:x?mode=memory", ProfileStandard)
	assert.Contains(t, std, "file:x?mode=memory&_pragma=busy_timeout(5000)")
	assert.NotContains(t, std, "query_only")
}

func TestRebind(t *testing.T) {
	pg := &DB{driver: DriverPostgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pg.Rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	lite := &DB{driver: DriverSQLite}
	assert.Equal(t, "SELECT ?", lite.Rebind("SELECT ?"))
}
