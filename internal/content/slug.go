package content

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

// DefaultOrder is used when neither front matter nor file name carry an order.
const DefaultOrder = 999

var (
	orderPrefix  = regexp.MustCompile(`^(\d+)\.`)
	whitespace   = regexp.MustCompile(`\s+`)
	slugStrip    = regexp.MustCompile(`[^a-z0-9-]`)
	dashRun      = regexp.MustCompile(`-{2,}`)
	docExtension = regexp.MustCompile(`(?i)\.(md|mdx|markdown|html?)$`)
)

// PathToSlug converts a content file path to a document ID.
//
//	"1.Welcome To TealinuxOS/1.What is TeaLinux .md" -> "welcome-to-tealinuxos/what-is-tealinux"
func PathToSlug(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+filepathToSlash(p)), "/")
	segments := strings.Split(p, "/")

	out := segments[:0]
	for _, seg := range segments {
		if s := Slugify(docExtension.ReplaceAllString(orderPrefix.ReplaceAllString(seg, ""), "")); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "/")
}

// Slugify lower-cases s, turns whitespace into hyphens and drops anything
// outside [a-z0-9-].
func Slugify(s string) string {
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = slugStrip.ReplaceAllString(strings.ToLower(s), "")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ExtractOrder returns the numeric prefix of a file name.
//
//	"80.About Page.md" -> 80
func ExtractOrder(filename string) int {
	m := orderPrefix.FindStringSubmatch(path.Base(filepathToSlash(filename)))
	if m == nil {
		return DefaultOrder
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultOrder
	}
	return n
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
