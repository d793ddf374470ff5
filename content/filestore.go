// Package content reads the markdown documents that ship with the site as
// file-backed blog posts. Each document is a YAML front matter block
// followed by the post body; the directory is rescanned on every call so
// deployed content needs no cache invalidation.
package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/jmorales/portfolio-backend/models"
)

const markdownExt = ".md"

type FileStore struct {
	root   string
	logger zerolog.Logger
}

func NewFileStore(root string) *FileStore {
	return &FileStore{
		root:   root,
		logger: log.With().Str("component", "fileStore").Str("root", root).Logger(),
	}
}

// ListPosts scans the content root and returns all non-draft posts sorted
// newest-first (ties keep directory order). A missing root yields an empty
// list, not an error. Documents that cannot be read are logged and skipped
// so one bad file never aborts a listing.
func (s *FileStore) ListPosts() ([]models.FilePost, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var posts []models.FilePost
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownExt) {
			continue
		}
		post, err := s.readPost(entry.Name())
		if err != nil {
			s.logger.Error().Err(err).Str("file", entry.Name()).Msg("skipping unreadable post")
			continue
		}
		if post.Draft {
			continue
		}
		posts = append(posts, *post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// GetBySlug returns the post for slug, or nil when the document is missing
// or unreadable. Unreadable files are logged; absence is not an error.
func (s *FileStore) GetBySlug(slug string) (*models.FilePost, error) {
	if !validSlug(slug) {
		return nil, nil
	}
	post, err := s.readPost(slug + markdownExt)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to read post")
		return nil, nil
	}
	return post, nil
}

// ListSlugs enumerates every document basename, drafts included.
func (s *FileStore) ListSlugs() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownExt) {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(entry.Name(), markdownExt))
	}
	return slugs, nil
}

func (s *FileStore) readPost(filename string) (*models.FilePost, error) {
	raw, err := os.ReadFile(filepath.Join(s.root, filename))
	if err != nil {
		return nil, err
	}

	header, body := splitFrontMatter(string(raw))
	post := parseFrontMatter(header, s.logger)
	post.Slug = strings.TrimSuffix(filename, markdownExt)
	post.Content = body
	if post.Title == "" {
		post.Title = post.Slug
	}
	return &post, nil
}

// splitFrontMatter separates the leading "---" delimited YAML block from
// the body. Documents without a front matter block are all body.
func splitFrontMatter(raw string) (header, body string) {
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}
	rest := strings.TrimPrefix(raw, "---")
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")

	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return "", raw
	}
	header = rest[:idx]
	body = rest[idx+len("\n---"):]
	body = strings.TrimPrefix(body, "\r\n")
	body = strings.TrimPrefix(body, "\n")
	return header, body
}

// parseFrontMatter decodes the header into a loose map and coerces fields
// one by one. A malformed field falls back to its zero value instead of
// discarding the whole document.
func parseFrontMatter(header string, logger zerolog.Logger) models.FilePost {
	var post models.FilePost
	if header == "" {
		return post
	}

	fields := map[string]any{}
	if err := yaml.Unmarshal([]byte(header), &fields); err != nil {
		logger.Warn().Err(err).Msg("malformed front matter, using defaults")
		return post
	}

	post.Title = asString(fields["title"])
	post.Description = asString(fields["description"])
	post.Date = asTime(fields["date"])
	post.Tags = asStringSlice(fields["tags"])
	post.Featured = asBool(fields["featured"])
	post.Draft = asBool(fields["draft"])
	return post
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

func asStringSlice(v any) []string {
	switch items := v.(type) {
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if items == "" {
			return nil
		}
		return []string{items}
	}
	return nil
}

// validSlug rejects anything that could escape the content root.
func validSlug(slug string) bool {
	return slug != "" &&
		!strings.ContainsAny(slug, "/\\") &&
		!strings.Contains(slug, "..")
}
