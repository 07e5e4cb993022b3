package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/notas/pkg/note"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListNotesTool(srv, svc)
	registerGetNoteTool(srv, svc)
	registerSearchNotesTool(srv, svc)
	registerCreateNoteTool(srv, svc)
	registerUpdateNoteTool(srv, svc)
	registerDeleteNoteTool(srv, svc)
	registerAddTodoTool(srv, svc)
	registerCaptureTodoTool(srv, svc)
	registerToggleTodoTool(srv, svc)
	registerDeleteTodoTool(srv, svc)
}

func registerListNotesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_notes",
		mcp.WithDescription("List all notes, newest first, with todo counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summaries, err := svc.ListNotes(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"notes": summaries,
			"count": len(summaries),
		})
	})
}

func registerGetNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_note",
		mcp.WithDescription("Fetch a single note and its todos by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.NoteByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSearchNotesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_notes",
		mcp.WithDescription("Search notes by substring match across note text and todos."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of notes to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.SearchNotes(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerCreateNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_note",
		mcp.WithDescription("Create a new note. It becomes the newest note."),
		mcp.WithString("text",
			mcp.Description("Plain text of the note; blank lines separate paragraphs."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.CreateNote(ctx, request.GetString("text", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_note",
		mcp.WithDescription("Replace the text of a note."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note identifier to modify."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("New plain text of the note."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.UpdateContent(ctx, args.ID, args.Text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_note",
		mcp.WithDescription("Delete a note and its todos."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteNote(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerAddTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_todo",
		mcp.WithDescription("Append a todo to a note."),
		mcp.WithString("note_id",
			mcp.Required(),
			mcp.Description("Note that receives the todo."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Todo text; must not be blank."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			NoteID string `json:"note_id"`
			Text   string `json:"text"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddTodo(ctx, args.NoteID, args.Text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCaptureTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"capture_todo",
		mcp.WithDescription("Capture text from a web page as the first todo of a note."),
		mcp.WithString("note_id",
			mcp.Required(),
			mcp.Description("Note that receives the capture."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Selected text to capture."),
		),
		mcp.WithString("page_url",
			mcp.Description("Address of the page the text came from."),
		),
		mcp.WithString("page_title",
			mcp.Description("Title of the page the text came from."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			NoteID    string `json:"note_id"`
			Text      string `json:"text"`
			PageURL   string `json:"page_url"`
			PageTitle string `json:"page_title"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CaptureTodo(ctx, args.NoteID, note.Capture{
			Text:      args.Text,
			PageURL:   args.PageURL,
			PageTitle: args.PageTitle,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_todo",
		mcp.WithDescription("Flip a todo between open and completed."),
		mcp.WithString("note_id",
			mcp.Required(),
			mcp.Description("Note that holds the todo."),
		),
		mcp.WithString("todo_id",
			mcp.Required(),
			mcp.Description("Todo identifier to toggle."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteID, err := request.RequireString("note_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		todoID, err := request.RequireString("todo_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ToggleTodo(ctx, noteID, todoID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_todo",
		mcp.WithDescription("Remove a todo from a note."),
		mcp.WithString("note_id",
			mcp.Required(),
			mcp.Description("Note that holds the todo."),
		),
		mcp.WithString("todo_id",
			mcp.Required(),
			mcp.Description("Todo identifier to remove."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteID, err := request.RequireString("note_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		todoID, err := request.RequireString("todo_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.DeleteTodo(ctx, noteID, todoID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
