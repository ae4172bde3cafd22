package hashtag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "case variants collapse to one lowercase tag",
			content: "hello #World and #world again",
			want:    []string{"world"},
		},
		{
			name:    "order of first appearance is kept",
			content: "#beta then #alpha then #beta",
			want:    []string{"beta", "alpha"},
		},
		{
			name:    "digits and underscore belong to the tag",
			content: "release #go1_22 today",
			want:    []string{"go1_22"},
		},
		{
			name:    "punctuation ends the tag",
			content: "#go!stop and #yes.",
			want:    []string{"go", "yes"},
		},
		{
			name:    "non-latin scripts are tags too",
			content: "오늘도 #새벽코딩 #Кофе",
			want:    []string{"새벽코딩", "кофе"},
		},
		{
			name:    "bare hash is not a tag",
			content: "just a # sign",
			want:    nil,
		},
		{
			name:    "no tags yields nil",
			content: "plain text",
			want:    nil,
		},
		{
			name:    "blank content yields nil",
			content: "   ",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.content))
		})
	}
}

func TestExtract_TruncatesLongTags(t *testing.T) {
	long := strings.Repeat("a", 80)

	tags := Extract("#" + long)

	assert.Equal(t, []string{strings.Repeat("a", MaxTagLength)}, tags)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "golang", Normalize("  GoLang "))
	assert.Equal(t, "", Normalize("   "))

	// truncation must not split a multi-byte rune
	wide := strings.Repeat("코", 60)
	assert.Equal(t, strings.Repeat("코", MaxTagLength), Normalize(wide))
}
