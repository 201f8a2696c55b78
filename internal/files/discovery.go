package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"ossreport/internal/workbook"
	"ossreport/pkg/contracts/domain"
)

// FileInfo represents information about a discovered workbook
type FileInfo struct {
	Path    string             `json:"path"`
	Name    string             `json:"name"`
	Size    int64              `json:"size"`
	ModTime time.Time          `json:"modified"`
	Kind    domain.DatasetKind `json:"kind,omitempty"`
	Year    int                `json:"year,omitempty"`
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindWorkbooks lists the .xlsx files of dir, oldest first. Kind is set when
// the file name names a dataset.
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !IsWorkbookName(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		fi := FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if kind, ok := workbook.KindFromFilename(name); ok {
			fi.Kind = kind
		}
		if year, ok := ExtractYear(name); ok {
			fi.Year = year
		}
		found = append(found, fi)
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].ModTime.Before(found[j].ModTime)
	})

	return found, nil
}

// IsWorkbookName reports whether name is an .xlsx file other than an Excel
// lock file
func IsWorkbookName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx") && !strings.HasPrefix(name, "~$")
}

var yearPattern = regexp.MustCompile(`(?:^|\D)(20\d{2})(?:\D|$)`)

// ExtractYear returns the first 20xx year mentioned in a file name
func ExtractYear(name string) (int, bool) {
	m := yearPattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// FilterByYear keeps files whose name mentions year or no year at all
func FilterByYear(files []FileInfo, year int) []FileInfo {
	var filtered []FileInfo
	for _, f := range files {
		if f.Year == 0 || f.Year == year {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

// LatestByKind returns the newest file of each known dataset kind. Files
// without a kind are ignored.
func LatestByKind(files []FileInfo) map[domain.DatasetKind]FileInfo {
	byKind := make(map[domain.DatasetKind][]FileInfo)
	for _, f := range files {
		if f.Kind != "" {
			byKind[f.Kind] = append(byKind[f.Kind], f)
		}
	}

	latest := make(map[domain.DatasetKind]FileInfo, len(byKind))
	for kind, list := range byKind {
		if f, ok := GetLatestFile(list); ok {
			latest[kind] = f
		}
	}
	return latest
}

// Unclassified returns the files whose kind could not be told from the name
func Unclassified(files []FileInfo) []FileInfo {
	var out []FileInfo
	for _, f := range files {
		if f.Kind == "" {
			out = append(out, f)
		}
	}
	return out
}
