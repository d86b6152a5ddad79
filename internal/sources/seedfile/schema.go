package seedfile

// BookmarkEntry is one bookmark in the seed file.
// Only url is required; title falls back to the domain.
type BookmarkEntry struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// CategoryEntry groups bookmarks. An empty name leaves them uncategorized.
//
//	- name: Development
//	  color: "#3b82f6"
//	  bookmarks:
//	    - title: Go
//	      url: https://go.dev
type CategoryEntry struct {
	Name      string          `yaml:"name"`
	Color     string          `yaml:"color"`
	Bookmarks []BookmarkEntry `yaml:"bookmarks"`
}

// Config is the root structure of the seed file.
type Config []CategoryEntry
