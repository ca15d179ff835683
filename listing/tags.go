package listing

import (
	"sort"
)

// TagCount maps a tag slug to the number of posts using it.
type TagCount map[string]int

// TagEntry is one line of the navigation panel.
type TagEntry struct {
	Tag   string `json:"tag"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// DistinctTags returns the union of the posts' tags in order of first
// appearance. Tags are compared as authored, so "Go" and "go" are distinct.
func DistinctTags(posts []Post) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// CountTags counts, per slug, how many posts carry the tag.
func CountTags(posts []Post) TagCount {
	counts := make(TagCount)
	for _, p := range posts {
		seen := make(map[string]struct{}, len(p.Tags))
		for _, t := range p.Tags {
			s := Slug(t)
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			counts[s]++
		}
	}
	return counts
}

// RankTags orders tags by descending count. Tags without a count rank as 0.
// Equal counts keep their input order. The input slice is not modified.
func RankTags(tags []string, counts TagCount) []string {
	ranked := make([]string, len(tags))
	copy(ranked, tags)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[Slug(ranked[i])] > counts[Slug(ranked[j])]
	})
	return ranked
}

// BuildTagIndex groups the corpus by partition and returns each partition's
// ranked tag list. Every partition named in counts gets an entry, empty when
// none of its posts carry tags, so callers can suppress the section.
func BuildTagIndex[P comparable](corpus []Post, partitionOf func(Post) P, counts map[P]TagCount) map[P][]string {
	groups := make(map[P][]Post)
	var order []P
	for _, p := range corpus {
		key := partitionOf(p)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}
	index := make(map[P][]string, len(groups)+len(counts))
	for _, key := range order {
		index[key] = RankTags(DistinctTags(groups[key]), counts[key])
	}
	for key := range counts {
		if _, ok := index[key]; !ok {
			index[key] = []string{}
		}
	}
	return index
}

// ResolveCounts picks the count table used for ranking. An override table,
// when supplied, wins entirely even if it is stale; live counts are used
// only when no override exists.
func ResolveCounts(live, override TagCount) TagCount {
	if override != nil {
		return override
	}
	if live == nil {
		return TagCount{}
	}
	return live
}

// MissingCounts returns the tags that have no entry in counts. A non-empty
// result against an override table means the table is out of date.
func MissingCounts(tags []string, counts TagCount) []string {
	var missing []string
	for _, t := range tags {
		if _, ok := counts[Slug(t)]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

// Entries pairs ranked tags with their slug and count.
func Entries(tags []string, counts TagCount) []TagEntry {
	entries := make([]TagEntry, 0, len(tags))
	for _, t := range tags {
		s := Slug(t)
		entries = append(entries, TagEntry{Tag: t, Slug: s, Count: counts[s]})
	}
	return entries
}

// FilterByTag returns the posts having a tag whose slug equals slug.
func FilterByTag(posts []Post, slug string) []Post {
	var out []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if Slug(t) == slug {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
