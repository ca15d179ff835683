package listing

import "strings"

// ResolveAssetPath returns the URL an image should be loaded from when the
// site is served under basePath. Absolute http(s) URLs and data: URIs are
// returned unchanged; anything else is joined onto basePath with exactly one
// slash in between.
func ResolveAssetPath(rawPath, basePath string) string {
	if isSelfContained(rawPath) {
		return rawPath
	}
	return JoinBase(basePath, rawPath)
}

// StaticImagePath resolves a file stored under /static/images.
func StaticImagePath(filename, basePath string) string {
	return ResolveAssetPath("/static/images/"+strings.TrimLeft(filename, "/"), basePath)
}

// JoinBase joins a site prefix and a rooted path. The result always starts
// with a slash and never contains a doubled slash at the seam.
func JoinBase(prefix, p string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(p, "/")
}

func isSelfContained(p string) bool {
	return strings.HasPrefix(p, "http://") ||
		strings.HasPrefix(p, "https://") ||
		strings.HasPrefix(p, "data:")
}
