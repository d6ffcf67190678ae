package diffengine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/keshon/fvc/internal/fileprobe"
	"github.com/keshon/fvc/internal/fsio"
	"github.com/keshon/fvc/internal/model"
)

// SearchEngine scans stored snapshot content across versions.
type SearchEngine struct {
	versionsDir string
}

// NewSearchEngine returns an engine over a project's versions directory.
func NewSearchEngine(versionsDir string) *SearchEngine {
	return &SearchEngine{versionsDir: versionsDir}
}

// SearchInVersions collects every line containing query, per version
// and per file recorded in it. Binary files, missing files and files
// not matching the extension filter are skipped; so are unreadable
// files. Matching is case-folded unless caseSensitive.
func (e *SearchEngine) SearchInVersions(query string, versions []model.Version, extensions []string, caseSensitive bool) []model.SearchResult {
	needle := query
	if !caseSensitive {
		needle = strings.ToLower(query)
	}

	var results []model.SearchResult
	for _, v := range versions {
		versionDir := filepath.Join(e.versionsDir, fmt.Sprintf("v%d", v.Number))
		for _, rel := range v.Files {
			if !matchesExtension(rel, extensions) {
				continue
			}

			fullPath := filepath.Join(versionDir, filepath.FromSlash(rel))
			if !fsio.Exists(fullPath) || !fileprobe.IsText(fullPath) {
				continue
			}

			content := fileprobe.ReadText(fullPath)
			if content == "" {
				continue
			}

			for i, line := range splitLinesBare(content) {
				haystack := line
				if !caseSensitive {
					haystack = strings.ToLower(line)
				}
				if strings.Contains(haystack, needle) {
					results = append(results, model.SearchResult{
						Version:    v,
						FilePath:   rel,
						LineNumber: i + 1,
						LineText:   strings.TrimSpace(line),
						Match:      query,
					})
				}
			}
		}
	}
	return results
}

// SearchVersionDescriptions filters versions whose description contains
// query as a substring.
func (e *SearchEngine) SearchVersionDescriptions(query string, versions []model.Version, caseSensitive bool) []model.Version {
	needle := query
	if !caseSensitive {
		needle = strings.ToLower(query)
	}

	var results []model.Version
	for _, v := range versions {
		haystack := v.Description
		if !caseSensitive {
			haystack = strings.ToLower(v.Description)
		}
		if strings.Contains(haystack, needle) {
			results = append(results, v)
		}
	}
	return results
}

func matchesExtension(rel string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(rel)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// splitLinesBare splits normalized content into lines without
// terminators, dropping the phantom line after a trailing newline.
func splitLinesBare(s string) []string {
	lines := strings.Split(normalizeEOL(s), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
