// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSetHomeDir(t *testing.T) {
	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}

	tmpDir := t.TempDir()
	original := os.Getenv(key)

	cleanup := SetHomeDir(t, tmpDir)
	if got := os.Getenv(key); got != tmpDir {
		t.Errorf("%s = %q, want %q", key, got, tmpDir)
	}

	cleanup()
	if got := os.Getenv(key); got != original {
		t.Errorf("after cleanup, %s = %q, want %q", key, got, original)
	}
}

func TestMustSetenv_UnsetsWhenPreviouslyUnset(t *testing.T) {
	const key = "FXODEPS_TESTUTIL_UNSET"
	t.Cleanup(MustUnsetenv(t, key))

	cleanup := MustSetenv(t, key, "1")
	if got := os.Getenv(key); got != "1" {
		t.Errorf("%s = %q, want %q", key, got, "1")
	}
	cleanup()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after cleanup", key)
	}
}

func TestMustWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "shader.fxo")
	MustWriteFile(t, path, []byte("GSFX"))

	if got := string(MustReadFile(t, path)); got != "GSFX" {
		t.Errorf("MustReadFile() = %q, want %q", got, "GSFX")
	}
}
