// Copyright 2025 The memic-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	memic "github.com/punithg/memic-go"
	"github.com/punithg/memic-go/core"
	"github.com/punithg/memic-go/search"
	"github.com/punithg/memic-go/upload"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load(".env")

	app := &cli.App{
		Name:  "memic",
		Usage: "Upload documents and search them with the Memic API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Memic API key (defaults to MEMIC_API_KEY)",
				EnvVars: []string{"MEMIC_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "API base URL override (defaults to MEMIC_BASE_URL)",
				EnvVars: []string{"MEMIC_BASE_URL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "projects",
				Usage:  "List all projects in the organization",
				Action: projectsCommand,
			},
			{
				Name:   "upload",
				Usage:  "Upload a file to a project and wait for processing",
				Action: uploadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Aliases:  []string{"p"},
						Usage:    "Target project ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the file to upload",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "reference-id",
						Usage: "Reference ID for external system linking",
					},
					&cli.BoolFlag{
						Name:  "no-wait",
						Usage: "Return after confirm instead of waiting for ready",
					},
					&cli.DurationFlag{
						Name:  "poll-interval",
						Usage: "Pause between status checks",
						Value: upload.DefaultPollInterval,
					},
					&cli.DurationFlag{
						Name:  "poll-timeout",
						Usage: "Maximum time to wait for ready",
						Value: upload.DefaultPollTimeout,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show the processing status of a file",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "project",
						Aliases:  []string{"p"},
						Usage:    "Project ID containing the file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file-id",
						Usage:    "File ID to check",
						Required: true,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search for content across documents",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "project",
						Aliases: []string{"p"},
						Usage:   "Limit search to a project",
					},
					&cli.StringSliceFlag{
						Name:  "file-id",
						Usage: "Limit search to specific files (repeatable)",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of results to request",
						Value: search.DefaultTopK,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Minimum similarity score",
						Value: search.DefaultMinScore,
					},
					&cli.StringFlag{
						Name:  "reference-id",
						Usage: "Filter by file reference ID",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Filter by category",
					},
					&cli.StringFlag{
						Name:  "document-type",
						Usage: "Filter by document type",
					},
					&cli.IntSliceFlag{
						Name:  "page",
						Usage: "Filter by page number (repeatable)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", levelStr)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func newClient(c *cli.Context) (*memic.Client, error) {
	var opts []memic.ConfigOption
	if key := c.String("api-key"); key != "" {
		opts = append(opts, memic.WithAPIKey(key))
	}
	if baseURL := c.String("base-url"); baseURL != "" {
		opts = append(opts, memic.WithBaseURL(baseURL))
	}
	return memic.NewClient(opts...)
}

func projectsCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	projects, err := client.ListProjects(context.Background())
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}
	for _, p := range projects {
		state := "active"
		if !p.IsActive {
			state = "inactive"
		}
		fmt.Printf("%s  %s (%s)\n", p.Id, p.Name, state)
	}
	return nil
}

func uploadCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	opts := []upload.UploadOption{
		upload.PollEvery(c.Duration("poll-interval")),
		upload.PollFor(c.Duration("poll-timeout")),
		upload.WithMonitor(&printMonitor{out: os.Stderr}),
	}
	if ref := c.String("reference-id"); ref != "" {
		opts = append(opts, upload.WithReferenceID(ref))
	}
	if c.Bool("no-wait") {
		opts = append(opts, upload.WithoutWait())
	}

	file, err := client.UploadFile(context.Background(), c.String("project"), c.String("file"), opts...)
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded %s\n", file.OriginalFilename)
	printFile(file)
	return nil
}

func statusCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	file, err := client.GetFileStatus(context.Background(), c.String("project"), c.String("file-id"))
	if err != nil {
		return err
	}

	printFile(file)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("usage: memic search <query>")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	opts := []search.QueryOption{
		search.WithTopK(c.Int("top-k")),
		search.WithMinScore(c.Float64("min-score")),
	}
	if p := c.String("project"); p != "" {
		opts = append(opts, search.InProject(p))
	}
	if ids := c.StringSlice("file-id"); len(ids) > 0 {
		opts = append(opts, search.InFiles(ids...))
	}
	filters := &core.MetadataFilters{
		ReferenceId:  c.String("reference-id"),
		Category:     c.String("category"),
		DocumentType: c.String("document-type"),
		PageNumbers:  c.IntSlice("page"),
	}
	opts = append(opts, search.WithFilters(filters))

	results, err := client.Search(context.Background(), query, opts...)
	if err != nil {
		return err
	}

	if results.Routing != nil {
		fmt.Printf("Routed to: %s\n", results.Routing.Route)
	}
	for _, r := range results.Semantic() {
		fmt.Printf("[%.2f] %s #%d\n%s\n\n", r.Score, r.FileName, r.ChunkIndex, r.Content)
	}
	if s := results.Structured(); s != nil && s.HasData() {
		printStructured(s)
	}
	fmt.Printf("%d results in %.0f ms\n", results.TotalResults, results.SearchTimeMs)
	return nil
}

func printFile(file *core.File) {
	fmt.Printf("  id:         %s\n", file.Id)
	fmt.Printf("  status:     %s\n", file.Status)
	fmt.Printf("  size:       %d bytes\n", file.Size)
	fmt.Printf("  chunks:     %d\n", file.TotalChunks)
	fmt.Printf("  embeddings: %d\n", file.TotalEmbeddings)
	if file.ErrorMessage != "" {
		fmt.Printf("  error:      %s\n", file.ErrorMessage)
	}
}

func printStructured(s *core.StructuredResult) {
	names := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		names = append(names, col.Name)
	}
	fmt.Println(strings.Join(names, "\t"))
	for _, row := range s.Rows {
		cells := make([]string, 0, len(names))
		for _, name := range names {
			cells = append(cells, fmt.Sprintf("%v", row[name]))
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
}

// printMonitor renders poll progress to stderr.
type printMonitor struct {
	out      *os.File
	started  time.Time
	lastSeen core.FileStatus
}

func (m *printMonitor) Start(_, fileId string) {
	m.started = time.Now()
	fmt.Fprintf(m.out, "Waiting for file %s...\n", fileId)
}

func (m *printMonitor) Check(file *core.File) {
	if file.Status == m.lastSeen {
		return
	}
	m.lastSeen = file.Status
	fmt.Fprintf(m.out, "  %-20s %s\n", file.Status, time.Since(m.started).Round(time.Second))
}

func (m *printMonitor) Finish(_ *core.File, err error) {
	if err != nil {
		return
	}
	fmt.Fprintf(m.out, "Done in %s.\n", time.Since(m.started).Round(time.Second))
}
