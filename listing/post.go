// Package listing derives the navigation data of a blog list page: the ranked
// tag index per language, the visible slice of posts and the pagination
// descriptor. Every function here is pure and safe for concurrent use.
package listing

import "strings"

// Partition is the language a post is written in.
type Partition int

const (
	Vietnamese Partition = 0
	English    Partition = 1
)

// Partitions lists the partitions in navigation panel order.
func Partitions() []Partition {
	return []Partition{English, Vietnamese}
}

// String returns the short language code.
func (p Partition) String() string {
	switch p {
	case Vietnamese:
		return "vi"
	case English:
		return "en"
	}
	return "unknown"
}

// Label returns the heading shown above the partition's tags.
func (p Partition) Label() string {
	switch p {
	case Vietnamese:
		return "Tiếng Việt"
	case English:
		return "English"
	}
	return p.String()
}

// ParsePartition accepts a language code or name. Unknown values report false.
func ParsePartition(s string) (Partition, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vi", "vn", "vietnamese", "tiếng việt", "0":
		return Vietnamese, true
	case "en", "english", "1":
		return English, true
	}
	return English, false
}

// Post is a read-only record supplied by the content source.
type Post struct {
	Path      string
	Date      string
	Title     string
	Summary   string
	Tags      []string
	Partition Partition
}

// PartitionOf is the default partitioning function.
func PartitionOf(p Post) Partition {
	return p.Partition
}
