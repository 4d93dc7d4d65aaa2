package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/treeline-labs/freemap-cli/internal/adapters/driven/config/file"
)

// setupTestConfig points the command wiring at a throwaway config
// store so tests never touch the user's real one.
func setupTestConfig(t *testing.T) {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = store
	t.Cleanup(func() {
		configStore = nil
		logLevel = ""
	})
}

func writeFixture(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.mm")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

const fixtureMap = `<map version="freeplane 1.11.5">
  <node TEXT="root" ID="ID_100">
    <node TEXT="Test" ID="ID_101">
      <icon BUILTIN="yes"/>
    </node>
    <node TEXT="test" ID="ID_102"/>
  </node>
</map>
`
