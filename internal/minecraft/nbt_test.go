package minecraft

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTagString appends a named TAG_String tag: the type byte, the name,
// then the length-prefixed UTF-8 value.
func writeTagString(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(tagString)
	writeName(buf, name)
	writeU16(buf, uint16(len(value)))
	buf.WriteString(value)
}

func writeName(buf *bytes.Buffer, name string) {
	writeU16(buf, uint16(len(name)))
	buf.WriteString(name)
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeI32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

// buildLevelDat constructs a minimal gzip-compressed level.dat with a
// Data compound containing LevelName and an Int field, to exercise both
// scalar and string payload decoding.
func buildLevelDat(t *testing.T, levelName string) []byte {
	t.Helper()

	var body bytes.Buffer
	// Root compound, unnamed.
	body.WriteByte(tagCompound)
	writeName(&body, "")

	// Data compound.
	body.WriteByte(tagCompound)
	writeName(&body, "Data")

	writeTagString(&body, "LevelName", levelName)

	body.WriteByte(tagInt)
	writeName(&body, "Version")
	writeI32(&body, 19133)

	body.WriteByte(tagEnd) // end Data

	body.WriteByte(tagEnd) // end root

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err := gw.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	return gzBuf.Bytes()
}

func TestReadLevelName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "level.dat")
	require.NoError(t, os.WriteFile(p, buildLevelDat(t, "My World"), 0o644))

	name, err := ReadLevelName(p)
	require.NoError(t, err)
	assert.Equal(t, "My World", name)
}

func TestReadLevelNameMalformedFallsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "level.dat")
	require.NoError(t, os.WriteFile(p, []byte("not gzip data"), 0o644))

	_, err := ReadLevelName(p)
	require.Error(t, err)
}

func TestListWorldsFallsBackToFolderNameWithoutLevelDat(t *testing.T) {
	t.Parallel()

	saves := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(saves, "World1"), 0o755))

	worlds, err := ListWorlds(saves)
	require.NoError(t, err)
	require.Len(t, worlds, 1)
	assert.Equal(t, "World1", worlds[0].FolderName)
	assert.Equal(t, "World1", worlds[0].DisplayName)
	assert.Empty(t, worlds[0].Warning)
}

func TestListWorldsUsesLevelName(t *testing.T) {
	t.Parallel()

	saves := t.TempDir()
	worldDir := filepath.Join(saves, "folder_name")
	require.NoError(t, os.MkdirAll(worldDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(worldDir, "level.dat"), buildLevelDat(t, "Displayed Name"), 0o644))

	worlds, err := ListWorlds(saves)
	require.NoError(t, err)
	require.Len(t, worlds, 1)
	assert.Equal(t, "folder_name", worlds[0].FolderName)
	assert.Equal(t, "Displayed Name", worlds[0].DisplayName)
}

func TestListWorldsFallsBackOnMalformedNbt(t *testing.T) {
	t.Parallel()

	saves := t.TempDir()
	worldDir := filepath.Join(saves, "BrokenWorld")
	require.NoError(t, os.MkdirAll(worldDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(worldDir, "level.dat"), []byte("garbage"), 0o644))

	worlds, err := ListWorlds(saves)
	require.NoError(t, err)
	require.Len(t, worlds, 1)
	assert.Equal(t, "BrokenWorld", worlds[0].DisplayName)
	assert.NotEmpty(t, worlds[0].Warning)
}
