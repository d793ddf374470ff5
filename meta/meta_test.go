package meta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World!!", "hello-world"},
		{"Go 1.23 Released", "go-1-23-released"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"UPPERCASE", "uppercase"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"", ""},
		{"a__b__c", "a-b-c"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.title), "title %q", tc.title)
	}
}

func TestGenerateSlugProperties(t *testing.T) {
	titles := []string{"Hello, World!!", "a__b__c", "What's new in Go?", "100% coverage"}
	for _, title := range titles {
		slug := GenerateSlug(title)
		assert.Equal(t, strings.ToLower(slug), slug)
		assert.False(t, strings.HasPrefix(slug, "-"), "slug %q has leading hyphen", slug)
		assert.False(t, strings.HasSuffix(slug, "-"), "slug %q has trailing hyphen", slug)
		assert.NotContains(t, slug, "--")
		for _, r := range slug {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, valid, "slug %q contains %q", slug, r)
		}
	}
}

func TestTagSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Go", "go"},
		{"Web Development", "web-development"},
		{"  Machine   Learning ", "machine-learning"},
		{"C++", "c"},
		{"self-hosting", "self-hosting"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TagSlug(tc.name), "name %q", tc.name)
	}
}

func TestEstimateReadingTime(t *testing.T) {
	assert.Equal(t, 0, EstimateReadingTime(""))
	assert.Equal(t, 1, EstimateReadingTime(" "), "whitespace-only content is still non-empty")
	assert.Equal(t, 1, EstimateReadingTime("\n\t  "))
	assert.Equal(t, 1, EstimateReadingTime("one"))
	assert.Equal(t, 1, EstimateReadingTime(words(200)))
	assert.Equal(t, 2, EstimateReadingTime(words(201)))
	assert.Equal(t, 3, EstimateReadingTime(words(401)))
}

func TestEstimateReadingTimeMonotonic(t *testing.T) {
	prev := 0
	for _, n := range []int{1, 50, 199, 200, 201, 400, 1000, 5000} {
		minutes := EstimateReadingTime(words(n))
		assert.GreaterOrEqual(t, minutes, 1, "%d words", n)
		assert.GreaterOrEqual(t, minutes, prev, "%d words", n)
		prev = minutes
	}
}

func TestEstimateReadingTimeStable(t *testing.T) {
	content := words(1234)
	first := EstimateReadingTime(content)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, EstimateReadingTime(content))
	}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}
