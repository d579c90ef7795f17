package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
	})

	t.Run("empty path is ignored", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(""))
	})

	t.Run("loads values without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("CODECOMMENT_TEST_A=from-file\nCODECOMMENT_TEST_B=from-file\n"), 0o644))
		t.Setenv("CODECOMMENT_TEST_B", "from-env")
		t.Cleanup(func() { os.Unsetenv("CODECOMMENT_TEST_A") })

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "from-file", os.Getenv("CODECOMMENT_TEST_A"))
		assert.Equal(t, "from-env", os.Getenv("CODECOMMENT_TEST_B"))
	})
}

func TestAnnotateCommandWithMock(t *testing.T) {
	src := filepath.Join(t.TempDir(), "hello.py")
	require.NoError(t, os.WriteFile(src, []byte("print('hi')"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"annotate", "--mock", "--env-file", "", "--lang", "English", src})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		useMock = false
		targetLang = ""
		envFile = ".env"
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "// commented by mock\nprint('hi')", strings.TrimSpace(out.String()))
}

func TestAnnotateCommandRejectsBinary(t *testing.T) {
	src := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(src, []byte{0xff, 0xfe, 0x00}, 0o644))

	rootCmd.SetArgs([]string{"annotate", "--mock", "--env-file", "", src})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		useMock = false
		envFile = ".env"
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid UTF-8")
}
