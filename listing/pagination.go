package listing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rePageSuffix = regexp.MustCompile(`/page/(\d+)/?$`)
	reRootPage   = regexp.MustCompile(`^page/\d+/?$`)
)

// Pagination describes the page being shown and its neighbours. A disabled
// control has its Has flag false and an empty href.
type Pagination struct {
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	BasePath    string `json:"basePath"`
	HasPrev     bool   `json:"hasPrev"`
	HasNext     bool   `json:"hasNext"`
	PrevHref    string `json:"prevHref,omitempty"`
	NextHref    string `json:"nextHref,omitempty"`
}

// NormalizeBasePath strips leading slashes, trailing /page/<n> segments and
// trailing slashes from an active path until none remain, so applying it a
// second time never changes the result.
func NormalizeBasePath(activePath string) string {
	p := strings.TrimLeft(activePath, "/")
	for {
		q := rePageSuffix.ReplaceAllString(p, "")
		q = strings.TrimRight(q, "/")
		if reRootPage.MatchString(q) {
			q = ""
		}
		if q == p {
			return p
		}
		p = q
	}
}

// PageFromPath returns the page number encoded by a trailing /page/<n>
// segment, or 1 when there is none or it is not a positive number.
func PageFromPath(activePath string) int {
	m := rePageSuffix.FindStringSubmatch(activePath)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ResolvePagination builds the descriptor for currentPage of totalPages.
// Out-of-range input is clamped so that 1 <= CurrentPage <= TotalPages.
func ResolvePagination(activePath string, currentPage, totalPages int) Pagination {
	if totalPages < 1 {
		totalPages = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}
	base := NormalizeBasePath(activePath)
	pg := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		BasePath:    base,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
	if pg.HasPrev {
		pg.PrevHref = pageHref(base, currentPage-1)
	}
	if pg.HasNext {
		pg.NextHref = pageHref(base, currentPage+1)
	}
	return pg
}

// pageHref addresses page 1 as /<base>/ and page n as /<base>/page/<n>.
func pageHref(base string, n int) string {
	root := "/"
	if base != "" {
		root = "/" + base + "/"
	}
	if n == 1 {
		return root
	}
	return root + "page/" + strconv.Itoa(n)
}

// Visible reports whether navigation controls should be rendered at all.
func (p Pagination) Visible() bool {
	return p.TotalPages > 1
}

// WithPrefix returns a copy whose hrefs are served under the site prefix.
func (p Pagination) WithPrefix(prefix string) Pagination {
	if p.HasPrev {
		p.PrevHref = JoinBase(prefix, p.PrevHref)
	}
	if p.HasNext {
		p.NextHref = JoinBase(prefix, p.NextHref)
	}
	return p
}

// TotalPages returns the number of pages needed for n items, at least 1.
func TotalPages(n, perPage int) int {
	if perPage < 1 || n <= 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// Paginate returns the posts of the given 1-based page. Pages outside the
// range yield an empty slice.
func Paginate(posts []Post, page, perPage int) []Post {
	if perPage < 1 || page < 1 {
		return []Post{}
	}
	start := (page - 1) * perPage
	if start >= len(posts) {
		return []Post{}
	}
	end := start + perPage
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}

// SelectVisible returns override when it is non-empty and posts otherwise.
func SelectVisible(posts, override []Post) []Post {
	if len(override) > 0 {
		return override
	}
	return posts
}
