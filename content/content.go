// Package content reads the blog corpus from a directory of Markdown files
// with YAML front matter, and reads and writes the per-language tag count
// tables produced at build time.
package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/eringen/pubindex/listing"
)

// frontMatter is the metadata block at the top of a post file.
type frontMatter struct {
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Tags     []string `yaml:"tags"`
	Summary  string   `yaml:"summary"`
	Draft    bool     `yaml:"draft"`
	PostType *int     `yaml:"postType"`
	Lang     string   `yaml:"lang"`
}

// Dir is a content directory. Files ending in .md or .mdx become posts.
type Dir string

// LoadPosts reads every post under the directory, skipping drafts, and
// returns them newest first.
func (d Dir) LoadPosts() ([]listing.Post, error) {
	root := string(d)
	var posts []listing.Post
	err := filepath.WalkDir(root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() || !isPostFile(e.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		post, draft, err := parsePost(raw, rel)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if !draft {
			posts = append(posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortPosts(posts)
	return posts, nil
}

func isPostFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

func parsePost(raw []byte, rel string) (listing.Post, bool, error) {
	var fm frontMatter
	if _, err := frontmatter.Parse(bytes.NewReader(raw), &fm); err != nil {
		return listing.Post{}, false, err
	}
	slugPath := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = path.Base(slugPath)
	}
	return listing.Post{
		Path:      "blog/" + slugPath,
		Date:      strings.TrimSpace(fm.Date),
		Title:     title,
		Summary:   strings.TrimSpace(fm.Summary),
		Tags:      cleanTags(fm.Tags),
		Partition: partitionOf(fm),
	}, fm.Draft, nil
}

// partitionOf prefers the numeric postType and falls back to lang. Posts
// that declare neither are English.
func partitionOf(fm frontMatter) listing.Partition {
	if fm.PostType != nil {
		if p, ok := listing.ParsePartition(strconv.Itoa(*fm.PostType)); ok {
			return p
		}
	}
	if p, ok := listing.ParsePartition(fm.Lang); ok {
		return p
	}
	return listing.English
}

func cleanTags(tags []string) []string {
	out := []string{}
	for _, t := range tags {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SortPosts orders posts by date, newest first. Posts with equal or
// unparsable dates keep their relative order.
func SortPosts(posts []listing.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return parseDate(posts[i].Date).After(parseDate(posts[j].Date))
	})
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
