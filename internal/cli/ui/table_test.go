package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "ID", "NAME", "PATTERN")
	table.AddRow("1", "الطويل", "//o/o//o/o/o//o/o//o/o/o")
	table.AddRow("10", "الرجز", "/o/o//o/o/o//o/o/o//o")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID  NAME    PATTERN", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "──  ──────  "))
	assert.Equal(t, "1   الطويل  //o/o//o/o/o//o/o//o/o/o", lines[2])
	assert.Equal(t, "10  الرجز   /o/o//o/o/o//o/o/o//o", lines[3])
}

func TestTableWithoutHeaders(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true)
	table.AddRow("x")
	table.Render()
	assert.Empty(t, buf.String())
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 0, Width(""))
	assert.Equal(t, 5, Width("فعولن"))
	assert.Equal(t, 5, Width("فَعُولُنْ"))
	assert.Equal(t, 4, Width("//o/"))
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Meter", "الطويل")
	kv.AddRow("Confidence", "1.000")
	kv.Render()

	assert.Equal(t, "Meter:      الطويل\nConfidence: 1.000\n", buf.String())
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "البحور", true)
	assert.Equal(t, "البحور\n──────\n", buf.String())
}
