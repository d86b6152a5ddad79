package redis

const (
	// KeyPrefixBookmark is the prefix for bookmark keys
	KeyPrefixBookmark = "shelf:bookmark:"
	// KeyPrefixCategory is the prefix for category keys
	KeyPrefixCategory = "shelf:category:"
	// KeyPrefixMetadata is the prefix for cached page metadata
	KeyPrefixMetadata = "shelf:meta:"
	// KeyAllBookmarks is the set of all bookmark IDs
	KeyAllBookmarks = "shelf:bookmarks:all"
	// KeyAllCategories is the set of all category IDs
	KeyAllCategories = "shelf:categories:all"
)

// BookmarkKey returns the Redis key for a bookmark
func BookmarkKey(id string) string {
	return KeyPrefixBookmark + id
}

// CategoryKey returns the Redis key for a category
func CategoryKey(id string) string {
	return KeyPrefixCategory + id
}

// MetadataKey returns the Redis key for the cached metadata of a page
func MetadataKey(pageURL string) string {
	return KeyPrefixMetadata + pageURL
}
