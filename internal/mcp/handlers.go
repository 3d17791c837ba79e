package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rbessler/inkwell/internal/errors"
	"github.com/rbessler/inkwell/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	svc *ops.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *ops.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Request types for each tool

// ListRequest represents the arguments for entry_list.
type ListRequest struct {
	Category *string `json:"category,omitempty"`
}

// GetRequest represents the arguments for entry_get.
type GetRequest struct {
	ID       string  `json:"id"`
	Category *string `json:"category,omitempty"`
}

// CreateRequest represents the arguments for entry_create.
type CreateRequest struct {
	Title       string   `json:"title"`
	Author      *string  `json:"author,omitempty"`
	Category    string   `json:"category"`
	Status      *string  `json:"status,omitempty"`
	Content     string   `json:"content,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	MediaType   *string  `json:"mediaType,omitempty"`
	MediaURL    *string  `json:"mediaUrl,omitempty"`
	IsLocked    bool     `json:"isLocked,omitempty"`
	PublishDate *int64   `json:"publishDate,omitempty"`
}

// UpdateRequest represents the arguments for entry_update.
type UpdateRequest struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title,omitempty"`
	Author      *string   `json:"author,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	MediaType   *string   `json:"mediaType,omitempty"`
	MediaURL    *string   `json:"mediaUrl,omitempty"`
	IsLocked    *bool     `json:"isLocked,omitempty"`
	PublishDate *int64    `json:"publishDate,omitempty"`
}

// DeleteRequest represents the arguments for entry_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// SearchRequest represents the arguments for entry_search.
type SearchRequest struct {
	Query string `json:"query"`
}

// Handler implementations

// HandleList handles the entry_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.List(ctx, ops.ListInput{Category: input.Category})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the entry_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.Get(ctx, ops.GetInput{
		ID:       input.ID,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCreate handles the entry_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.Create(ctx, ops.CreateInput{
		Title:       input.Title,
		Author:      input.Author,
		Category:    input.Category,
		Status:      input.Status,
		Content:     input.Content,
		Tags:        input.Tags,
		MediaType:   input.MediaType,
		MediaURL:    input.MediaURL,
		IsLocked:    input.IsLocked,
		PublishDate: input.PublishDate,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdate handles the entry_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.Update(ctx, ops.UpdateInput{
		ID:          input.ID,
		Title:       input.Title,
		Author:      input.Author,
		Category:    input.Category,
		Status:      input.Status,
		Content:     input.Content,
		Tags:        input.Tags,
		MediaType:   input.MediaType,
		MediaURL:    input.MediaURL,
		IsLocked:    input.IsLocked,
		PublishDate: input.PublishDate,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the entry_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.Delete(ctx, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearch handles the entry_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.Search(ctx, ops.SearchInput{Query: input.Query})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if appErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		if appErr.Code != errors.ErrInternal && appErr.Code != errors.ErrStore && appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
