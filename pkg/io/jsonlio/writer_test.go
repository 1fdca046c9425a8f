package jsonlio_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/custodian/pkg/frame"
	"github.com/wdm0006/custodian/pkg/io/jsonlio"
)

func TestWriteAll(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "id", Type: frame.KindInt},
		{Name: "note", Type: frame.KindString, Nullable: true},
	}})
	f.AppendNullRow()
	require.NoError(t, f.SetCell(0, "id", int64(7)))
	require.NoError(t, f.SetCell(0, "note", "hi"))
	f.AppendNullRow()
	require.NoError(t, f.SetCell(1, "id", int64(8)))

	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.NoError(t, jsonlio.WriteAll(path, f))

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.NoError(t, sc.Err())
	require.Len(t, lines, 2)

	assert.Equal(t, float64(7), lines[0]["id"])
	assert.Equal(t, "hi", lines[0]["note"])
	// null cells are omitted, not emitted as JSON null
	_, ok := lines[1]["note"]
	assert.False(t, ok)
}
