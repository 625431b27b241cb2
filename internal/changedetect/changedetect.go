// Package changedetect provides hash-based change detection so card
// regeneration can be skipped when the source data has not changed.
package changedetect

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ComputeFileHash returns the SHA-256 of a file's raw bytes, or "" if the
// file is absent or unreadable.
func ComputeFileHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ComputeJSONHash returns the SHA-256 of the file's JSON content after
// normalization (sorted keys, compact separators), so formatting-only edits
// never change the hash. Returns "" when the file is absent or not valid
// JSON.
func ComputeJSONHash(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return ""
	}

	// encoding/json writes map keys in sorted order, which is exactly the
	// normalization the cache needs.
	normalized, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	sum := sha256.Sum256(normalized)
	return hex.EncodeToString(sum[:])
}

// ComputeHash picks the hashing strategy by extension: normalized JSON for
// .json files, raw bytes for everything else.
func ComputeHash(path string) string {
	if filepath.Ext(path) == ".json" {
		return ComputeJSONHash(path)
	}
	return ComputeFileHash(path)
}

// LoadCache reads the hash cache file, returning an empty cache when the file
// is absent or unparsable. A broken cache only costs a regeneration.
func LoadCache(cachePath string) map[string]string {
	raw, err := os.ReadFile(cachePath)
	if err != nil {
		return map[string]string{}
	}

	var cache map[string]string
	if err := json.Unmarshal(raw, &cache); err != nil {
		return map[string]string{}
	}
	return cache
}

// SaveCache persists the hash cache. Failure is logged, never fatal: the
// cache is an optimization, and the worst case is a redundant regeneration
// on the next run.
func SaveCache(cachePath string, cache map[string]string, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		log.Warn("could not create hash cache directory", zap.String("path", cachePath), zap.Error(err))
		return
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		log.Warn("could not encode hash cache", zap.String("path", cachePath), zap.Error(err))
		return
	}

	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		log.Warn("could not save hash cache", zap.String("path", cachePath), zap.Error(err))
	}
}

// HasChanged reports whether the data file differs from the hash recorded
// under cacheKey. An uncomputable hash (missing or unparsable source) counts
// as changed so the downstream pipeline runs and surfaces the real error.
func HasChanged(dataPath, cachePath, cacheKey string) bool {
	current := ComputeHash(dataPath)
	if current == "" {
		return true
	}
	return LoadCache(cachePath)[cacheKey] != current
}

// UpdateCache records the data file's current hash under cacheKey using a
// read-merge-write of the cache file. No-op when the hash cannot be
// computed.
func UpdateCache(dataPath, cachePath, cacheKey string, log *zap.Logger) {
	current := ComputeHash(dataPath)
	if current == "" {
		return
	}

	cache := LoadCache(cachePath)
	cache[cacheKey] = current
	SaveCache(cachePath, cache, log)
}

// ShouldRegenerate decides whether an SVG needs regenerating. It is
// side-effect free; callers update the cache after a successful generation.
func ShouldRegenerate(dataPath, svgPath, cachePath, cacheKey string, force bool) bool {
	if force {
		return true
	}
	if _, err := os.Stat(svgPath); err != nil {
		return true
	}
	if _, err := os.Stat(dataPath); err != nil {
		return true
	}
	return HasChanged(dataPath, cachePath, cacheKey)
}
