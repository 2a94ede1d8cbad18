package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveOutputs moves the files a processing run produced (processed
// menu documents and index.json) out of menusDir into a timestamped
// directory under menusDir/archive. The input menus stay where they are,
// so the directory is ready for a fresh run.
func ArchiveOutputs(menusDir string) error {
	// Check if menus directory exists
	if _, err := os.Stat(menusDir); os.IsNotExist(err) {
		return fmt.Errorf("menus directory does not exist: %s", menusDir)
	}

	outputs, err := filepath.Glob(filepath.Join(menusDir, "menu.*-processed.json"))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", menusDir, err)
	}
	if index := filepath.Join(menusDir, "index.json"); fileExists(index) {
		outputs = append(outputs, index)
	}
	if len(outputs) == 0 {
		return fmt.Errorf("no processed outputs found in %s", menusDir)
	}

	// Generate timestamp
	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(menusDir, "archive", fmt.Sprintf("outputs-%s", timestamp))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(menusDir, "archive", fmt.Sprintf("outputs-%s", timestamp))
	}

	if err := os.MkdirAll(archivePath, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	for _, path := range outputs {
		target := filepath.Join(archivePath, filepath.Base(path))
		if err := os.Rename(path, target); err != nil {
			return fmt.Errorf("failed to archive %s: %w", path, err)
		}
	}

	fmt.Printf("Archived %d output files to: %s\n", len(outputs), archivePath)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
