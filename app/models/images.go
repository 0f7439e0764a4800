package models

import "strings"

const (
	CategoryImageDir = "categories"
	BrandImageDir    = "brands"
	ProductImageDir  = "products"
	UserImageDir     = "users"
)

// URLExpander rewrites stored filenames into public URLs for responses only.
type URLExpander interface {
	ExpandImageURLs(baseURL string)
}

// ImageHolder is implemented by documents that reference uploaded files.
// ImageFiles returns paths relative to the upload root.
type ImageHolder interface {
	URLExpander
	ImageFiles() []string
}

func imagePath(dir, name string) string {
	if name == "" || isAbsoluteURL(name) {
		return ""
	}
	return dir + "/" + name
}

func imageURL(baseURL, dir, name string) string {
	if name == "" || isAbsoluteURL(name) {
		return name
	}
	return strings.TrimRight(baseURL, "/") + "/" + dir + "/" + name
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func collectPaths(dir string, names ...string) []string {
	var out []string
	for _, n := range names {
		if p := imagePath(dir, n); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// StaleImages lists files referenced by before that after no longer references.
func StaleImages(before, after ImageHolder) []string {
	if before == nil {
		return nil
	}
	keep := map[string]bool{}
	if after != nil {
		for _, p := range after.ImageFiles() {
			keep[p] = true
		}
	}
	var stale []string
	for _, p := range before.ImageFiles() {
		if !keep[p] {
			stale = append(stale, p)
		}
	}
	return stale
}
