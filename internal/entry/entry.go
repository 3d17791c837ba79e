package entry

// Category classifies an entry. The set is closed; writes with an
// unknown category fail validation before reaching the store.
type Category string

const (
	CategoryPoems   Category = "Poems"
	CategoryStories Category = "Stories"
	CategoryMedia   Category = "Media"
	CategoryNotes   Category = "Notes"
)

// Categories lists all valid categories.
var Categories = []Category{CategoryPoems, CategoryStories, CategoryMedia, CategoryNotes}

// Status is the publication state of an entry.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPublished Status = "Published"
)

// Statuses lists all valid statuses.
var Statuses = []Status{StatusDraft, StatusPublished}

// Entry is the unit of content: a poem, story, media item, or note.
type Entry struct {
	// ID is a ULID assigned by the store at creation, immutable afterwards
	ID string `json:"id"`

	// Title is required and non-empty
	Title string `json:"title"`

	// Author is optional
	Author *string `json:"author,omitempty"`

	// Category is one of the closed category set
	Category Category `json:"category"`

	// Status defaults to Draft
	Status Status `json:"status"`

	// Content is rich text (HTML-bearing); may be empty
	Content string `json:"content"`

	// Tags is a list of free-form tags (stored as JSON in the DB)
	Tags []string `json:"tags"`

	// MediaType and MediaURL describe attached media, relevant for the
	// Media category only
	MediaType *string `json:"mediaType,omitempty"`
	MediaURL  *string `json:"mediaUrl,omitempty"`

	// IsLocked marks entries that need a secondary access gate before
	// full content is shown; enforcement belongs to the consumer
	IsLocked bool `json:"isLocked"`

	// Views is a monotonically incremented read counter
	Views int64 `json:"views"`

	// PublishDate is the Unix timestamp of publication (nullable)
	PublishDate *int64 `json:"publishDate,omitempty"`

	// CreatedAt and UpdatedAt are Unix timestamps assigned by the store
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// ValidCategory reports whether c is a member of the category set.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a member of the status set.
func ValidStatus(s Status) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}
