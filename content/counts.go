package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/eringen/pubindex/listing"
)

// LoadCounts reads a flat slug-to-count table. JSON and YAML are both
// accepted.
func LoadCounts(path string) (listing.TagCount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	counts := listing.TagCount{}
	if err := yaml.Unmarshal(raw, &counts); err != nil {
		return nil, fmt.Errorf("decode tag counts %s: %w", path, err)
	}
	for slug, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("decode tag counts %s: negative count for %q", path, slug)
		}
	}
	return counts, nil
}

// WriteCounts encodes counts as indented JSON with sorted keys.
func WriteCounts(w io.Writer, counts listing.TagCount) error {
	if counts == nil {
		counts = listing.TagCount{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(counts)
}

// CountsFileName is the table name used for a partition.
func CountsFileName(p listing.Partition) string {
	switch p {
	case listing.Vietnamese:
		return "tag-data-vietnamese.json"
	default:
		return "tag-data-english.json"
	}
}

// WriteCountsDir writes one table per partition into dir, counting tags
// from posts.
func WriteCountsDir(dir string, posts []listing.Post) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	byPartition := make(map[listing.Partition][]listing.Post)
	for _, p := range posts {
		byPartition[p.Partition] = append(byPartition[p.Partition], p)
	}
	var written []string
	for _, part := range listing.Partitions() {
		path := filepath.Join(dir, CountsFileName(part))
		f, err := os.Create(path)
		if err != nil {
			return written, err
		}
		err = WriteCounts(f, listing.CountTags(byPartition[part]))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
