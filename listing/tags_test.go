package listing

import (
	"reflect"
	"testing"
)

func TestBuildTagIndexFirstAppearanceTieBreak(t *testing.T) {
	corpus := []Post{
		{Path: "blog/one", Tags: []string{"A", "B"}, Partition: English},
		{Path: "blog/two", Tags: []string{"B"}, Partition: English},
		{Path: "blog/three", Tags: []string{"C"}, Partition: English},
	}
	counts := map[Partition]TagCount{
		English: {"a": 5, "b": 5, "c": 1},
	}
	got := BuildTagIndex(corpus, PartitionOf, counts)
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got[English], want) {
		t.Errorf("BuildTagIndex()[English] = %v, want %v", got[English], want)
	}
}

func TestBuildTagIndexPartitions(t *testing.T) {
	corpus := []Post{
		{Path: "blog/en-1", Tags: []string{"Go", "Web"}, Partition: English},
		{Path: "blog/vi-1", Tags: []string{"Lập Trình"}, Partition: Vietnamese},
		{Path: "blog/en-2", Tags: []string{"Web"}, Partition: English},
	}
	counts := map[Partition]TagCount{
		English:    {"go": 1, "web": 2},
		Vietnamese: {"lập-trình": 1},
	}
	got := BuildTagIndex(corpus, PartitionOf, counts)
	if want := []string{"Web", "Go"}; !reflect.DeepEqual(got[English], want) {
		t.Errorf("English = %v, want %v", got[English], want)
	}
	if want := []string{"Lập Trình"}; !reflect.DeepEqual(got[Vietnamese], want) {
		t.Errorf("Vietnamese = %v, want %v", got[Vietnamese], want)
	}
}

func TestBuildTagIndexEmptyPartition(t *testing.T) {
	corpus := []Post{
		{Path: "blog/en", Tags: []string{"Go"}, Partition: English},
	}
	counts := map[Partition]TagCount{English: {"go": 1}, Vietnamese: {}}
	got := BuildTagIndex(corpus, PartitionOf, counts)
	vi, ok := got[Vietnamese]
	if !ok {
		t.Fatal("expected an entry for the empty Vietnamese partition")
	}
	if vi == nil || len(vi) != 0 {
		t.Errorf("Vietnamese = %#v, want empty non-nil slice", vi)
	}
}

func TestBuildTagIndexEmptyCorpus(t *testing.T) {
	got := BuildTagIndex(nil, PartitionOf, nil)
	if len(got) != 0 {
		t.Errorf("BuildTagIndex(nil) = %v, want empty", got)
	}
}

func TestBuildTagIndexMissingCountsRankLast(t *testing.T) {
	corpus := []Post{
		{Tags: []string{"Unknown", "Known"}, Partition: English},
	}
	counts := map[Partition]TagCount{English: {"known": 3}}
	got := BuildTagIndex(corpus, PartitionOf, counts)
	if want := []string{"Known", "Unknown"}; !reflect.DeepEqual(got[English], want) {
		t.Errorf("English = %v, want %v", got[English], want)
	}
}

func TestBuildTagIndexCustomPartitioner(t *testing.T) {
	corpus := []Post{
		{Path: "blog/a", Tags: []string{"x"}},
		{Path: "notes/b", Tags: []string{"y"}},
	}
	section := func(p Post) string {
		if len(p.Path) >= 5 && p.Path[:5] == "blog/" {
			return "blog"
		}
		return "other"
	}
	got := BuildTagIndex(corpus, section, nil)
	if !reflect.DeepEqual(got["blog"], []string{"x"}) || !reflect.DeepEqual(got["other"], []string{"y"}) {
		t.Errorf("BuildTagIndex() = %v", got)
	}
}

func TestRankedTagsHaveNoDuplicatesAndDescend(t *testing.T) {
	corpus := []Post{
		{Tags: []string{"Go", "go", "Rust", "Go"}, Partition: English},
		{Tags: []string{"Rust", "Zig", "Go"}, Partition: English},
		{Tags: []string{"Zig"}, Partition: English},
		{Tags: nil, Partition: English},
	}
	counts := map[Partition]TagCount{English: CountTags(corpus)}
	ranked := BuildTagIndex(corpus, PartitionOf, counts)[English]

	seen := make(map[string]bool)
	for _, tag := range ranked {
		if seen[tag] {
			t.Errorf("duplicate tag %q in %v", tag, ranked)
		}
		seen[tag] = true
	}
	for i := 1; i < len(ranked); i++ {
		prev, cur := counts[English][Slug(ranked[i-1])], counts[English][Slug(ranked[i])]
		if prev < cur {
			t.Errorf("%q (%d) ranked before %q (%d)", ranked[i-1], prev, ranked[i], cur)
		}
	}
	if len(ranked) != 4 {
		t.Errorf("ranked = %v, want 4 distinct display tags", ranked)
	}
}

func TestCountTags(t *testing.T) {
	posts := []Post{
		{Tags: []string{"Go", "go", "Web"}},
		{Tags: []string{"Go"}},
		{Tags: []string{}},
	}
	got := CountTags(posts)
	want := TagCount{"go": 2, "web": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountTags() = %v, want %v", got, want)
	}
}

func TestRankTagsDoesNotMutateInput(t *testing.T) {
	tags := []string{"b", "a"}
	_ = RankTags(tags, TagCount{"a": 2, "b": 1})
	if tags[0] != "b" || tags[1] != "a" {
		t.Errorf("RankTags mutated its input: %v", tags)
	}
}

func TestResolveCounts(t *testing.T) {
	live := TagCount{"go": 2}
	override := TagCount{"go": 9}
	if got := ResolveCounts(live, override); got["go"] != 9 {
		t.Errorf("override should win, got %v", got)
	}
	if got := ResolveCounts(live, nil); got["go"] != 2 {
		t.Errorf("live counts expected without override, got %v", got)
	}
	if got := ResolveCounts(nil, nil); got == nil {
		t.Error("ResolveCounts(nil, nil) should return an empty table")
	}
}

func TestMissingCounts(t *testing.T) {
	got := MissingCounts([]string{"Go", "New Tag"}, TagCount{"go": 1})
	if want := []string{"New Tag"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingCounts() = %v, want %v", got, want)
	}
}

func TestEntries(t *testing.T) {
	got := Entries([]string{"Web Dev", "Go"}, TagCount{"web-dev": 4})
	want := []TagEntry{
		{Tag: "Web Dev", Slug: "web-dev", Count: 4},
		{Tag: "Go", Slug: "go", Count: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestFilterByTag(t *testing.T) {
	posts := []Post{
		{Path: "blog/a", Tags: []string{"Web Dev"}},
		{Path: "blog/b", Tags: []string{"Go"}},
		{Path: "blog/c", Tags: []string{"go", "web-dev"}},
	}
	got := FilterByTag(posts, "web-dev")
	if len(got) != 2 || got[0].Path != "blog/a" || got[1].Path != "blog/c" {
		t.Errorf("FilterByTag(web-dev) = %v", got)
	}
	if got := FilterByTag(posts, "rust"); len(got) != 0 {
		t.Errorf("FilterByTag(rust) = %v, want none", got)
	}
}

func TestParsePartition(t *testing.T) {
	tests := []struct {
		input string
		want  Partition
		ok    bool
	}{
		{"en", English, true},
		{"English", English, true},
		{"vi", Vietnamese, true},
		{"0", Vietnamese, true},
		{"fr", English, false},
	}
	for _, tt := range tests {
		got, ok := ParsePartition(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePartition(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
