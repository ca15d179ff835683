package pubindex

import (
	"database/sql"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubindex/listing"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// Corpus supplies the ordered post records.
type Corpus interface {
	LoadPosts() ([]listing.Post, error)
}

// Index is an immutable snapshot of the corpus and its derived tag data.
type Index struct {
	Posts  []listing.Post
	Counts map[listing.Partition]listing.TagCount
	Tags   map[listing.Partition][]listing.TagEntry
}

// TagName returns the display form of the first tag whose slug is slug.
func (ix *Index) TagName(slug string) (string, bool) {
	for _, p := range ix.Posts {
		for _, t := range p.Tags {
			if listing.Slug(t) == slug {
				return t, true
			}
		}
	}
	return "", false
}

// BuildIndex derives the tag index of posts. A partition with an override
// table is ranked by that table; otherwise by live counts. Tags missing
// from an override table are reported through logger when it is non-nil.
func BuildIndex(posts []listing.Post, overrides map[listing.Partition]listing.TagCount, logger echo.Logger) *Index {
	byPartition := make(map[listing.Partition][]listing.Post)
	for _, p := range posts {
		byPartition[p.Partition] = append(byPartition[p.Partition], p)
	}

	counts := make(map[listing.Partition]listing.TagCount)
	for _, part := range listing.Partitions() {
		counts[part] = listing.ResolveCounts(listing.CountTags(byPartition[part]), overrides[part])
	}
	for part, group := range byPartition {
		if _, ok := counts[part]; !ok {
			counts[part] = listing.ResolveCounts(listing.CountTags(group), overrides[part])
		}
	}
	ranked := listing.BuildTagIndex(posts, listing.PartitionOf, counts)

	ix := &Index{
		Posts:  posts,
		Counts: counts,
		Tags:   make(map[listing.Partition][]listing.TagEntry, len(ranked)),
	}
	for part, tags := range ranked {
		ix.Tags[part] = listing.Entries(tags, counts[part])
		if overrides[part] == nil || logger == nil {
			continue
		}
		if missing := listing.MissingCounts(tags, counts[part]); len(missing) > 0 {
			logger.Warnf("tag counts for %s are stale: no entry for %v", part, missing)
		}
	}
	return ix
}

// PostCache is an in-memory cache of the corpus index with TTL.
type PostCache struct {
	mu        sync.RWMutex
	index     *Index
	fetched   time.Time
	ttl       time.Duration
	corpus    Corpus
	overrides map[listing.Partition]listing.TagCount
	logger    echo.Logger
}

// NewPostCache creates a PostCache backed by the given Corpus. logger may be nil.
func NewPostCache(c Corpus, ttl time.Duration, overrides map[listing.Partition]listing.TagCount, logger echo.Logger) *PostCache {
	return &PostCache{corpus: c, ttl: ttl, overrides: overrides, logger: logger}
}

func (c *PostCache) valid() bool {
	return c.index != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.index = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.corpus.LoadPosts()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []listing.Post{}
	}
	c.index = BuildIndex(posts, c.overrides, c.logger)
	c.fetched = time.Now()
	return nil
}

// Index returns the current snapshot, reloading it when stale.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) Index() (*Index, error) {
	c.mu.RLock()
	if c.valid() {
		ix := c.index
		c.mu.RUnlock()
		return ix, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.index, nil
}

// ListPosts returns all posts, or only those tagged with tagSlug when it is
// non-empty.
func (c *PostCache) ListPosts(tagSlug string) ([]listing.Post, error) {
	ix, err := c.Index()
	if err != nil {
		return nil, err
	}
	if tagSlug == "" {
		return ix.Posts, nil
	}
	return listing.FilterByTag(ix.Posts, tagSlug), nil
}

// GetPost returns a single post by path.
func (c *PostCache) GetPost(path string) (listing.Post, error) {
	ix, err := c.Index()
	if err != nil {
		return listing.Post{}, err
	}
	for _, p := range ix.Posts {
		if p.Path == path {
			return p, nil
		}
	}
	return listing.Post{}, ErrNotFound
}
