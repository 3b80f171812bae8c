// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the community discussion and resource tools via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/malezi/malezi/internal/community"
	"github.com/malezi/malezi/internal/identity"
	"github.com/malezi/malezi/internal/resources"
)

// Server wraps the MCP server with community tools. The process acts as a
// single user: every tool call runs under the identity given at startup,
// and the channel/topic selection is shared session state.
type Server struct {
	mcp       *server.MCPServer
	community *community.Service
	resources *resources.Service
	caller    identity.Identity
	sel       community.Selection
}

// New creates a new MCP server with all tools registered. Tool calls run
// as the given identity.
func New(communitySvc *community.Service, resourceSvc *resources.Service, caller identity.Identity) *Server {
	s := &Server{
		community: communitySvc,
		resources: resourceSvc,
		caller:    caller,
	}

	s.mcp = server.NewMCPServer(
		"Malezi",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_channels",
		mcp.WithDescription("List all community channels, oldest first."),
	), s.listChannels)

	s.mcp.AddTool(mcp.NewTool("select_channel",
		mcp.WithDescription("Select a channel by id. Clears any topic selection."),
		mcp.WithString("channel_id", mcp.Required(), mcp.Description("Channel id from list_channels")),
	), s.selectChannel)

	s.mcp.AddTool(mcp.NewTool("list_topics",
		mcp.WithDescription("List the selected channel's topics, newest first."),
	), s.listTopics)

	s.mcp.AddTool(mcp.NewTool("select_topic",
		mcp.WithDescription("Select a topic under the selected channel."),
		mcp.WithString("topic_id", mcp.Required(), mcp.Description("Topic id from list_topics")),
	), s.selectTopic)

	s.mcp.AddTool(mcp.NewTool("read_discussion",
		mcp.WithDescription("Read the selected topic's posts in creation order, with creator names and roles."),
	), s.readDiscussion)

	s.mcp.AddTool(mcp.NewTool("post_message",
		mcp.WithDescription("Append a message to the selected topic."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Message text")),
	), s.postMessage)

	s.mcp.AddTool(mcp.NewTool("clear_selection",
		mcp.WithDescription("Clear the channel and topic selection."),
	), s.clearSelection)

	s.mcp.AddTool(mcp.NewTool("search_resources",
		mcp.WithDescription("Search the resource library by term and category."),
		mcp.WithString("term", mcp.Description("Search term matched against title, description, and tags")),
		mcp.WithString("category", mcp.Description("Category filter; omit or use 'all' for every category")),
	), s.searchResources)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// callerCtx attaches the session identity to the tool call's context.
func (s *Server) callerCtx(ctx context.Context) context.Context {
	return identity.WithIdentity(ctx, s.caller)
}

func (s *Server) listChannels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	channels, err := s.community.ListChannels(s.callerCtx(ctx))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(channels, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) selectChannel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("channel_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	channels, err := s.community.ListChannels(s.callerCtx(ctx))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, ch := range channels {
		if ch.ID == id {
			s.sel.SelectChannel(ch)
			return mcp.NewToolResultText(fmt.Sprintf("selected channel %q", ch.Name)), nil
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("no channel with id %s", id)), nil
}

func (s *Server) listTopics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ch, ok := s.sel.Channel()
	if !ok {
		return mcp.NewToolResultError("no channel selected; call select_channel first"), nil
	}
	topics, err := s.community.ListTopics(s.callerCtx(ctx), ch.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(topics, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) selectTopic(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("topic_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ch, ok := s.sel.Channel()
	if !ok {
		return mcp.NewToolResultError("no channel selected; call select_channel first"), nil
	}
	topics, err := s.community.ListTopics(s.callerCtx(ctx), ch.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, tv := range topics {
		if tv.ID == id {
			if err := s.sel.SelectTopic(tv.Topic); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("selected topic %q", tv.Title)), nil
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("no topic with id %s in channel %q", id, ch.Name)), nil
}

func (s *Server) readDiscussion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tp, ok := s.sel.Topic()
	if !ok {
		return mcp.NewToolResultError("no topic selected; call select_topic first"), nil
	}
	posts, err := s.community.ListPosts(s.callerCtx(ctx), tp.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(posts, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) postMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tp, ok := s.sel.Topic()
	if !ok {
		return mcp.NewToolResultError("no topic selected; call select_topic first"), nil
	}
	p, err := s.community.CreatePost(s.callerCtx(ctx), tp.ID, content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("posted message %s", p.ID)), nil
}

func (s *Server) clearSelection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sel.ClearChannel()
	return mcp.NewToolResultText("selection cleared"), nil
}

func (s *Server) searchResources(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term := ""
	if v, err := req.RequireString("term"); err == nil {
		term = v
	}
	category := resources.CategoryAll
	if v, err := req.RequireString("category"); err == nil && v != "" {
		category = v
	}
	items, err := s.resources.Search(s.callerCtx(ctx), term, category)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
