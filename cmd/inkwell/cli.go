package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/rbessler/inkwell/internal/config"
	"github.com/rbessler/inkwell/internal/errors"
	"github.com/rbessler/inkwell/internal/mcp"
	"github.com/rbessler/inkwell/internal/ops"
	"github.com/rbessler/inkwell/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(svc *ops.Service, cfg *config.Config, log *slog.Logger) *cli.App {
	app := &cli.App{
		Name:    "inkwell",
		Usage:   "Content store with cached reads and fuzzy search",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(svc, cfg, log),
			mcpCmd(svc),
			listCmd(svc),
			getCmd(svc),
			createCmd(svc),
			updateCmd(svc),
			deleteCmd(svc),
			searchCmd(svc),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(svc *ops.Service, cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the entry REST API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := cfg.HTTPBind
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			port := cfg.HTTPPort
			if c.IsSet("port") {
				port = c.Int("port")
			}
			srv := web.NewServer(svc, log, bind, port)
			return web.Run(srv, log)
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the entry tools over MCP stdio",
		Action: func(_ *cli.Context) error {
			return mcp.Run(svc, Version)
		},
	}
}

// listCmd creates the list command.
func listCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List entries, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Restrict to one category"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{}
			if category := c.String("category"); category != "" {
				input.Category = &category
			}

			output, err := svc.List(c.Context, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch an entry by id",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Require the entry to belong to this category"},
		},
		Action: func(c *cli.Context) error {
			input := ops.GetInput{ID: c.Args().First()}
			if category := c.String("category"); category != "" {
				input.Category = &category
			}

			output, err := svc.Get(c.Context, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// createCmd creates the create command.
func createCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create an entry (reads content from stdin when piped)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Usage: "Entry title"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Required: true, Usage: "Entry category"},
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Author name"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Draft or Published"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.BoolFlag{Name: "locked", Usage: "Gate the content behind a secondary access check"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CreateInput{
				Title:    c.String("title"),
				Category: c.String("category"),
				IsLocked: c.Bool("locked"),
				Tags:     parseTags(c.String("tags")),
			}
			if author := c.String("author"); author != "" {
				input.Author = &author
			}
			if status := c.String("status"); status != "" {
				input.Status = &status
			}
			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Content = content
			}

			output, err := svc.Create(c.Context, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update an entry (optionally reads new content from stdin)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "New category"},
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "New author"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "New status"},
			&cli.StringFlag{Name: "tags", Usage: "New comma-separated tags"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateInput{ID: c.Args().First()}
			if c.IsSet("title") {
				title := c.String("title")
				input.Title = &title
			}
			if c.IsSet("category") {
				category := c.String("category")
				input.Category = &category
			}
			if c.IsSet("author") {
				author := c.String("author")
				input.Author = &author
			}
			if c.IsSet("status") {
				status := c.String("status")
				input.Status = &status
			}
			if c.IsSet("tags") {
				tags := parseTags(c.String("tags"))
				input.Tags = &tags
			}
			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Content = &content
			}

			output, err := svc.Update(c.Context, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an entry permanently",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := svc.Delete(c.Context, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Fuzzy search over entry titles and content",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")
			output, err := svc.Search(c.Context, ops.SearchInput{Query: query})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// outputJSON prints v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if appErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
