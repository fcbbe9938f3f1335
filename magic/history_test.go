package magic

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vsql-project/vsql/core"
)

func TestHistoryRoundTrip(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "history.json")

	history := NewHistory(path)
	history.Add("SELECT 1", core.StateSucceeded, 1500*time.Microsecond, time.Now(), nil)
	history.Add("SELEKT 2", core.StateFailed, 200*time.Microsecond, time.Now(), errors.New("syntax error"))

	r.NoError(history.Store())

	restored := NewHistory(path)
	r.NoError(restored.Restore())

	records := restored.Records()
	r.Len(records, 2)

	r.Equal("SELECT 1", records[0].Query)
	r.Equal("succeeded", records[0].State)
	r.EqualValues(1500, records[0].TimeTaken)
	r.Empty(records[0].Error)
	r.NotEmpty(records[0].ID)

	r.Equal("SELEKT 2", records[1].Query)
	r.Equal("failed", records[1].State)
	r.Equal("syntax error", records[1].Error)
}

func TestHistoryRestoreMissingFile(t *testing.T) {
	r := require.New(t)

	history := NewHistory(filepath.Join(t.TempDir(), "nope.json"))
	r.Error(history.Restore())
	r.Empty(history.Records())
}

func TestConnectionStore(t *testing.T) {
	r := require.New(t)

	store := NewConnectionStore()

	params := &core.ConnectionParams{Name: "dbadmin@warehouse", Type: "vertica"}
	store.Set("dbadmin@warehouse", params)
	store.Set("", params) // ignored

	got, ok := store.Get("dbadmin@warehouse")
	r.True(ok)
	r.Equal(params, got)

	_, ok = store.Get("nobody@nowhere")
	r.False(ok)

	r.Equal([]string{"dbadmin@warehouse"}, store.Names())
}
