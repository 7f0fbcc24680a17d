package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.txt"))

	in := Session{ID: "abc123", CSRFToken: "tok456"}
	require.NoError(t, store.Save(in))

	out, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "session.txt")
	store := NewStore(path)

	require.NoError(t, store.Save(Session{ID: "a", CSRFToken: "b"}))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.txt"))

	_, ok := store.Load()
	assert.False(t, ok)
}

func TestLoadRejectsPartialSession(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"only session id", "JCoderID=abc123\n"},
		{"only csrf token", "csrftoken=tok456\n"},
		{"empty file", ""},
		{"empty values", "JCoderID=\ncsrftoken=\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, ok := NewStore(path).Load()
			assert.False(t, ok, "partial cache must load as absent")
		})
	}
}

func TestLoadIgnoresCommentsBlanksAndUnknownKeys(t *testing.T) {
	content := "# saved by ojAssistant\n" +
		"\n" +
		"garbage line without equals\n" +
		"extraKey=whatever\n" +
		"JCoderID = abc123 \n" +
		"csrftoken=tok456\n"
	path := filepath.Join(t.TempDir(), "session.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	sess, ok := NewStore(path).Load()
	require.True(t, ok)
	assert.Equal(t, "abc123", sess.ID)
	assert.Equal(t, "tok456", sess.CSRFToken)
}

func TestSaveRefusesIncompleteSession(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.txt"))
	assert.Error(t, store.Save(Session{ID: "only-half"}))
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.txt")
	store := NewStore(path)
	require.NoError(t, store.Save(Session{ID: "a", CSRFToken: "b"}))

	require.NoError(t, store.Clear())
	_, ok := store.Load()
	assert.False(t, ok)

	// clearing twice is fine
	require.NoError(t, store.Clear())
}

func TestValid(t *testing.T) {
	assert.True(t, Session{ID: "a", CSRFToken: "b"}.Valid())
	assert.False(t, Session{ID: "a"}.Valid())
	assert.False(t, Session{CSRFToken: "b"}.Valid())
	assert.False(t, Session{}.Valid())
}
