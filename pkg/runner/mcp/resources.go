package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerNotesResource(srv, svc)
	registerNoteTemplate(srv, svc)
}

func registerNotesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"notas://notes",
		"Notes",
		mcp.WithResourceDescription("All notes, newest first, with todo counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListNotes(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"notes": summaries,
			"count": len(summaries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerNoteTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"notas://notes/{id}",
		"Note Details",
		mcp.WithTemplateDescription("A single note with its content and todos."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments, "id")
		if id == "" {
			return nil, fmt.Errorf("note id is required")
		}

		dto, err := svc.NoteByID(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"note": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable; the server may hand them over
// as a string or as a single-element list.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
