package social

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags scans content for `#word` tokens and returns the names
// lowercased, leading `#` stripped, in order of appearance. Duplicates are
// kept; association de-dupes against the hashtag table.
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1]))
	}

	return tags
}
