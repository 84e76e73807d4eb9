// Package iostage implements the staging artifact contract on the local
// file system. Artifacts live in a working directory; archived artifacts
// move to a timestamp-named directory under the backup root.
package iostage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/barcraft/bardb/pkg/stage"
	"github.com/google/uuid"
)

type iostage struct {
	workDir   string
	backupDir string
}

// New creates a Stager rooted at workDir, archiving into backupDir.
// Both directories are created if missing.
func New(workDir, backupDir string) (stage.Stager, error) {
	for _, dir := range []string{workDir, backupDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, CreateDirError(dir, err)
		}
	}
	return &iostage{workDir: workDir, backupDir: backupDir}, nil
}

func (s *iostage) WriteJSON(kind string, v any) (stage.Ref, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", WriteArtifactError(kind, err)
	}

	ref := s.newRef(kind, "json")
	if err := os.WriteFile(s.Path(ref), data, 0644); err != nil {
		return "", WriteArtifactError(string(ref), err)
	}
	return ref, nil
}

func (s *iostage) ReadJSON(ref stage.Ref, v any) error {
	data, err := os.ReadFile(s.Path(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return MissingStagingFileError(s.Path(ref))
		}
		return ReadArtifactError(string(ref), err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return ReadArtifactError(string(ref), err)
	}
	return nil
}

func (s *iostage) WriteCSV(
	kind string, header []string, rows [][]string,
) (stage.Ref, error) {
	ref := s.newRef(kind, "csv")

	file, err := os.Create(s.Path(ref))
	if err != nil {
		return "", WriteArtifactError(string(ref), err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return "", WriteArtifactError(string(ref), err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", WriteArtifactError(string(ref), err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", WriteArtifactError(string(ref), err)
	}
	return ref, nil
}

func (s *iostage) ReadCSV(
	ref stage.Ref,
) (header []string, rows [][]string, err error) {
	file, err := os.Open(s.Path(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, MissingStagingFileError(s.Path(ref))
		}
		return nil, nil, ReadArtifactError(string(ref), err)
	}
	defer file.Close()

	all, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, ReadArtifactError(string(ref), err)
	}
	if len(all) == 0 {
		return nil, nil, ReadArtifactError(
			string(ref), fmt.Errorf("artifact has no header row"))
	}
	return all[0], all[1:], nil
}

func (s *iostage) Path(ref stage.Ref) string {
	return filepath.Join(s.workDir, string(ref))
}

func (s *iostage) Remove(ref stage.Ref) error {
	if err := os.Remove(s.Path(ref)); err != nil {
		return CleanupError(s.Path(ref), err)
	}
	return nil
}

func (s *iostage) Archive(refs ...stage.Ref) (string, error) {
	dir := filepath.Join(
		s.backupDir, strconv.FormatInt(time.Now().Unix(), 10))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", ArchiveError(dir, err)
	}

	for _, ref := range refs {
		src := s.Path(ref)
		dst := filepath.Join(dir, string(ref))
		if err := copyFile(src, dst); err != nil {
			return "", ArchiveError(src, err)
		}
		if err := os.Remove(src); err != nil {
			return "", ArchiveError(src, err)
		}
	}
	return dir, nil
}

func (s *iostage) Cleanup() error {
	entries, err := os.ReadDir(s.workDir)
	if err != nil {
		return CleanupError(s.workDir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(s.workDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return CleanupError(path, err)
		}
	}
	return nil
}

// newRef names an artifact with its kind and a fresh UUID so concurrent
// runs sharing a working directory never collide.
func (s *iostage) newRef(kind, ext string) stage.Ref {
	return stage.Ref(fmt.Sprintf("%s_%s.%s", kind, uuid.New().String(), ext))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
