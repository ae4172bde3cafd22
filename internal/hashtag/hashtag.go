// Package hashtag extracts normalized hashtags from post content.
package hashtag

import (
	"regexp"
	"strings"
)

// Tags are introduced by '#' and may contain letters of any script, digits
// and underscore. Stored tags are lowercase and at most MaxTagLength runes;
// the (post_id, tag) pair is unique, so repeated tags collapse to one row.
var tagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

const MaxTagLength = 50

// Extract returns the distinct normalized tags found in content, in order of
// first appearance. Empty content yields nil.
func Extract(content string) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var tags []string

	for _, match := range tagPattern.FindAllStringSubmatch(content, -1) {
		tag := Normalize(match[1])
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}

// Normalize trims, lowercases and truncates a raw tag to MaxTagLength runes.
func Normalize(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))

	if runes := []rune(tag); len(runes) > MaxTagLength {
		tag = string(runes[:MaxTagLength])
	}

	return tag
}
