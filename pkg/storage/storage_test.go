package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/harper/pkg/herrors"
	"github.com/harrisonrobin/harper/pkg/task"
	"github.com/harrisonrobin/harper/pkg/tasklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, min int) time.Time {
	return time.Date(2024, time.December, day, hour, min, 0, 0, time.Local)
}

func TestEncodeLine(t *testing.T) {
	assert.Equal(t, "T | 0 | read book", EncodeLine(task.NewToDo("read book", false)))
	assert.Equal(t, "D | 1 | return book | 2/12/2024 18:00", EncodeLine(task.NewDeadline("return book", true, at(2, 18, 0))))
	assert.Equal(t, "E | 0 | meeting | 2/12/2024 09:00 - 2/12/2024 10:00",
		EncodeLine(task.NewEvent("meeting", false, at(2, 9, 0), at(2, 10, 0))))
}

func TestDecodeLine(t *testing.T) {
	got, err := DecodeLine("E | 1 | meeting | 2/12/2024 9:00 - 2/12/2024 10:00")
	require.NoError(t, err)
	assert.True(t, task.NewEvent("meeting", true, at(2, 9, 0), at(2, 10, 0)).Equal(got))

	got, err = DecodeLine("D | 0 | a | b | 2/12/2024 18:00")
	require.NoError(t, err)
	assert.Equal(t, "a | b", got.Description)
}

func TestDecodeLine_Malformed(t *testing.T) {
	for _, line := range []string{
		"T | 0",
		"X | 0 | what",
		"T | 2 | read book",
		"D | 0 | return book",
		"D | 0 | return book | tomorrow",
		"E | 0 | meeting | 2/12/2024 9:00",
		"E | 0 | meeting | 2/12/2024 9:00 - soon",
		"T|0|read book",
	} {
		_, err := DecodeLine(line)
		assert.Error(t, err, line)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "harper.txt")
	store := New(path)

	original := tasklist.New(
		task.NewToDo("read book", false),
		task.NewToDo("pipes | in | text", true),
		task.NewDeadline("return book", true, at(2, 18, 0)),
		task.NewEvent("meeting", false, at(2, 9, 0), at(2, 10, 30)),
	)
	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	want, got := original.Tasks(), loaded.Tasks()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "task %d: want %v, got %v", i, want[i], got[i])
	}

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must be renamed away")
}

func TestSave_Overwrites(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "harper.txt"))
	require.NoError(t, store.Save(tasklist.New(task.NewToDo("a", false), task.NewToDo("b", false))))
	require.NoError(t, store.Save(tasklist.New(task.NewToDo("c", false))))

	data, err := os.ReadFile(store.Path)
	require.NoError(t, err)
	assert.Equal(t, "T | 0 | c\n", string(data))
}

func TestLoad_MissingFile(t *testing.T) {
	list, err := New(filepath.Join(t.TempDir(), "absent.txt")).Load()
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harper.txt")
	require.NoError(t, os.WriteFile(path, []byte("T | 0 | a\n\nT | 1 | b\r\n"), 0600))

	list, err := New(path).Load()
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())
	assert.Equal(t, "b", list.Tasks()[1].Description)
	assert.True(t, list.Tasks()[1].Done)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harper.txt")
	require.NoError(t, os.WriteFile(path, []byte("T | 0 | a\nD | 0 | no date\n"), 0600))

	_, err := New(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, herrors.ErrFileLoading)

	var loadErr *herrors.FileLoadingError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 2, loadErr.Line)
	assert.Contains(t, err.Error(), herrors.FileFormat)
}

func TestRoundTrip_LongDescription(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "harper.txt"))
	long := strings.Repeat("x", 200*1024)
	require.NoError(t, store.Save(tasklist.New(task.NewToDo(long, false), task.NewToDo("short", true))))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, long, loaded.Tasks()[0].Description)
}
