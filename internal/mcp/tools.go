package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var listToolDef = mcp.NewTool("entry_list",
	mcp.WithDescription("List entries newest first, optionally filtered by category (Poems, Stories, Media, Notes)."),
	mcp.WithString("category", mcp.Description("Restrict the listing to one category")),
)

var getToolDef = mcp.NewTool("entry_get",
	mcp.WithDescription("Fetch a single entry by id. With a category, an entry stored under a different category reads as not found."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id (ULID)")),
	mcp.WithString("category", mcp.Description("Require the entry to belong to this category")),
)

var createToolDef = mcp.NewTool("entry_create",
	mcp.WithDescription("Create a new entry. The id and timestamps are assigned by the store."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Entry title")),
	mcp.WithString("category", mcp.Required(), mcp.Description("One of Poems, Stories, Media, Notes")),
	mcp.WithString("author", mcp.Description("Author name")),
	mcp.WithString("status", mcp.Description("Draft or Published, defaults to Draft")),
	mcp.WithString("content", mcp.Description("Entry body, may contain HTML")),
	mcp.WithArray("tags", mcp.Description("Free-form tags"), mcp.Items(map[string]any{"type": "string"})),
	mcp.WithString("mediaType", mcp.Description("Media MIME type, for Media entries")),
	mcp.WithString("mediaUrl", mcp.Description("Media URL, for Media entries")),
	mcp.WithBoolean("isLocked", mcp.Description("Gate the content behind a secondary access check")),
	mcp.WithNumber("publishDate", mcp.Description("Publication time as a Unix timestamp")),
)

var updateToolDef = mcp.NewTool("entry_update",
	mcp.WithDescription("Update an entry. Absent fields are left unchanged; at least one must be provided."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id (ULID)")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("author", mcp.Description("New author")),
	mcp.WithString("category", mcp.Description("New category")),
	mcp.WithString("status", mcp.Description("New status")),
	mcp.WithString("content", mcp.Description("New body")),
	mcp.WithArray("tags", mcp.Description("Replacement tag list"), mcp.Items(map[string]any{"type": "string"})),
	mcp.WithString("mediaType", mcp.Description("New media MIME type")),
	mcp.WithString("mediaUrl", mcp.Description("New media URL")),
	mcp.WithBoolean("isLocked", mcp.Description("New lock state")),
	mcp.WithNumber("publishDate", mcp.Description("New publication time as a Unix timestamp")),
)

var deleteToolDef = mcp.NewTool("entry_delete",
	mcp.WithDescription("Delete an entry permanently."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Entry id (ULID)")),
)

var searchToolDef = mcp.NewTool("entry_search",
	mcp.WithDescription("Fuzzy search over entry titles and content. Returns up to 20 results with match spans; queries under two characters return an empty list."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
)
