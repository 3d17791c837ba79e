package cache

import "github.com/rbessler/inkwell/internal/entry"

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// Key derivation lives in one place so keys cannot drift between the
// populate and invalidate sides. Single entries are keyed solely by id:
// there are no id+category compound keys, so a write never has to
// enumerate category variants of an id to invalidate it. A
// category-filtered single-entry read checks the category of the fetched
// entry instead.

// ListAllKey is the key for the unfiltered entry list.
func ListAllKey() string {
	return "entries" + KeySeparator + "all"
}

// ListCategoryKey is the key for the list filtered by category c.
func ListCategoryKey(c entry.Category) string {
	return "entries" + KeySeparator + "category" + KeySeparator + string(c)
}

// EntryKey is the key for the single entry with the given id.
func EntryKey(id string) string {
	return "entry" + KeySeparator + id
}

// WriteKeys returns every key a write touching the given id and
// categories must invalidate: the unfiltered list, the list of each
// category involved (pre- and post-write), and the entry itself.
func WriteKeys(id string, categories ...entry.Category) []string {
	keys := []string{ListAllKey(), EntryKey(id)}
	seen := map[entry.Category]bool{}
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		keys = append(keys, ListCategoryKey(c))
	}
	return keys
}
