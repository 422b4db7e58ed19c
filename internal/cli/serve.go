package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/render"
	"github.com/matzehuels/dlgraph/pkg/twine"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var (
		from      string
		addr      string
		storyName string
	)

	cmd := &cobra.Command{
		Use:   "serve <input>",
		Short: "Preview a dialogue as a playable Twine story over HTTP",
		Long: `Preview a dialogue as a playable Twine story over HTTP.

The server exposes the loaded dialogue in several forms:

  /            redirects to /story.html
  /story.html  the playable Twine archive
  /story.json  the Twine JSON interchange form
  /graph.svg   a rendered conversation graph
  /graph.dot   the Graphviz source for the graph

The dialogue is loaded once at startup; restart the server to pick up file
changes. The listen address comes from --addr or the serve_addr config key.

Example:
  dlgraph serve tat17_talk.dlg.json --addr localhost:8642`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ServeAddr
			}
			if storyName == "" {
				storyName = cfg.StoryName
			}
			return runServe(cmd, args[0], from, addr, storyName)
		},
	}

	cmd.Flags().StringVar(&from, "from", formatAuto, "input format: auto, gff, twine-json, twine-html")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else localhost:8642)")
	cmd.Flags().StringVar(&storyName, "name", "", "story name shown in the preview")

	return cmd
}

func runServe(cmd *cobra.Command, input, from, addr, storyName string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	d, err := loadDialog(ctx, input, from)
	if err != nil {
		return err
	}

	meta := twine.Metadata{Name: storyName}
	if meta.Name == "" {
		meta.Name = input
	}

	router, err := newRouter(d, meta)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving dialogue preview", "addr", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newRouter builds the preview routes. All representations are rendered up
// front so requests only serve cached bytes.
func newRouter(d *dlg.Dialog, meta twine.Metadata) (chi.Router, error) {
	html, err := twine.Marshal(d, twine.FormatHTML, meta)
	if err != nil {
		return nil, err
	}
	jsonData, err := twine.Marshal(d, twine.FormatJSON, meta)
	if err != nil {
		return nil, err
	}
	dot := render.ToDOT(d, render.Options{Detailed: true})
	svg, err := render.SVG(dot)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	serveBytes := func(contentType string, data []byte) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", contentType)
			_, _ = w.Write(data)
		}
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/story.html", http.StatusFound)
	})
	r.Get("/story.html", serveBytes("text/html; charset=utf-8", html))
	r.Get("/story.json", serveBytes("application/json", jsonData))
	r.Get("/graph.svg", serveBytes("image/svg+xml", svg))
	r.Get("/graph.dot", serveBytes("text/vnd.graphviz", []byte(dot)))

	return r, nil
}
