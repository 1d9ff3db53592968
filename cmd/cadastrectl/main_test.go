package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_LoadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CADASTRECTL_TEST_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CADASTRECTL_TEST_VALUE") })

	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--env-file", envFile}))
	require.NoError(t, root.PersistentPreRunE(root, nil))

	assert.Equal(t, "from-file", os.Getenv("CADASTRECTL_TEST_VALUE"))
}

func TestRootCmd_MissingEnvFileIsIgnored(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env")}))

	assert.NoError(t, root.PersistentPreRunE(root, nil))
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0)
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Subset(t, names, []string{"migrate", "seed", "purge-sessions"})

	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	for _, flag := range []string{"admin-username", "admin-email", "admin-password"} {
		assert.NotNil(t, seed.Flags().Lookup(flag), flag)
	}
}
