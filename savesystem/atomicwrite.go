package savesystem

import (
	"fmt"
	"os"
)

// atomicWriteFile writes data to path via a temp-file-then-rename swap,
// backing up whatever previously occupied path to path+".bak" first
// (best-effort — a failed backup doesn't block the write), so a crash
// mid-write never leaves a half-written save file in place. Ported from
// the teacher's SaveGame atomic-write step in savesystem.go.
func atomicWriteFile(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		_ = os.Rename(path, path+".bak")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file into place: %w", err)
	}
	return nil
}
