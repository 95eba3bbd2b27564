package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/eunmann/mergebench/pkg/experiment"
	"github.com/eunmann/mergebench/pkg/sysmem"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = 1

// ManifestName is the file name of the run manifest.
const ManifestName = "manifest.json"

// Manifest records how a run was configured and which files it produced.
type Manifest struct {
	Version    int                 `json:"version"`
	CreatedAt  time.Time           `json:"created_at"`
	Seed       int64               `json:"seed"`
	MinValue   int                 `json:"min_value"`
	MaxValue   int                 `json:"max_value"`
	Experiment RunConfig           `json:"experiment"`
	Host       sysmem.Host         `json:"host"`
	Cells      int                 `json:"cells"`
	GCCycles   uint32              `json:"measure_gc_cycles"`
	Duration   time.Duration       `json:"duration_ns"`
	Files      map[string]FileInfo `json:"files"`
}

// RunConfig is the experiment grid as stored in the manifest.
type RunConfig struct {
	MinSize     int   `json:"min_size"`
	MaxSize     int   `json:"max_size"`
	Step        int   `json:"step"`
	Runs        int   `json:"runs"`
	Thresholds  []int `json:"thresholds"`
	RunStandard bool  `json:"standard"`
	RunHybrid   bool  `json:"hybrid"`
	Verify      bool  `json:"verify"`
}

// NewRunConfig copies the manifest-relevant fields of cfg. Runs is stored
// as the effective repetition count.
func NewRunConfig(cfg experiment.Config) RunConfig {
	return RunConfig{
		MinSize:     cfg.MinSize,
		MaxSize:     cfg.MaxSize,
		Step:        cfg.Step,
		Runs:        max(1, cfg.Runs),
		Thresholds:  append([]int(nil), cfg.Thresholds...),
		RunStandard: cfg.RunStandard,
		RunHybrid:   cfg.RunHybrid,
		Verify:      cfg.Verify,
	}
}

// FileInfo describes a single produced file.
type FileInfo struct {
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"` // SHA-256 hex
}

// WriteManifest checksums files and writes dir/manifest.json. Files are keyed
// by their path relative to dir. Version, CreatedAt (if zero) and Files are
// filled in on m.
func WriteManifest(dir string, m *Manifest, files []string) (string, error) {
	m.Version = ManifestVersion
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	m.Files = make(map[string]FileInfo, len(files))

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("%w: stat %s: %w", ErrOutput, path, err)
		}
		checksum, err := checksumFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: checksum %s: %w", ErrOutput, path, err)
		}
		m.Files[manifestKey(dir, path)] = FileInfo{
			Size:     info.Size(),
			Checksum: checksum,
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	manifestPath := filepath.Join(dir, ManifestName)
	out, err := Create(manifestPath)
	if err != nil {
		return "", err
	}
	if _, err := out.Write(data); err != nil {
		out.Abort()
		return "", err
	}
	if err := out.Commit(); err != nil {
		return "", err
	}
	return manifestPath, nil
}

// ReadManifest reads dir/manifest.json.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// VerifyManifest checks that every listed file matches its size and checksum.
func VerifyManifest(dir string, m *Manifest) error {
	for name, info := range m.Files {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, name)
		}

		stat, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("file %s: %w", name, err)
		}
		if stat.Size() != info.Size {
			return fmt.Errorf("file %s: size mismatch (got %d, want %d)",
				name, stat.Size(), info.Size)
		}

		checksum, err := checksumFile(path)
		if err != nil {
			return fmt.Errorf("checksum %s: %w", name, err)
		}
		if checksum != info.Checksum {
			return fmt.Errorf("file %s: checksum mismatch", name)
		}
	}
	return nil
}

func manifestKey(dir, path string) string {
	absDir, err1 := filepath.Abs(dir)
	absPath, err2 := filepath.Abs(path)
	if err1 != nil || err2 != nil {
		return path
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return absPath
	}
	return filepath.ToSlash(rel)
}

// checksumFile computes the SHA-256 checksum of a file.
func checksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
