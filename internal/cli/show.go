package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/dchassin/plot-glm/pkg/pipeline"
)

// showOpts holds the command-line flags for the show command.
type showOpts struct {
	renderOpts
	port   int  // listen port (0 picks a free port)
	noOpen bool // skip opening the browser
}

// showCommand creates the show command. It renders the model to SVG and
// serves it on localhost, opening the browser.
func (c *CLI) showCommand() *cobra.Command {
	var formatsStr string
	opts := showOpts{renderOpts: renderOpts{workdir: "."}}

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Render a model and display it in the browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			applyConfig(cmd, &opts.renderOpts, &formatsStr, cfg)

			input := ""
			if len(args) == 1 {
				input = args[0]
			} else {
				input, err = pickModelFile(opts.workdir)
				if err != nil {
					return err
				}
			}
			return c.runShow(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.base, "base", "B", 0, "power base for edge-width encoding (default 1kW)")
	cmd.Flags().StringVarP(&opts.layout, "layout", "L", "", "layout algorithm (default kamada_kawai)")
	cmd.Flags().IntVarP(&opts.nodeSize, "nodesize", "Z", 0, "node size in points (default 25)")
	cmd.Flags().StringVarP(&opts.nodeShape, "nodeshape", "N", "", "uniform node shape: o, ^, v, s (default: by phase)")
	cmd.Flags().StringVarP(&opts.title, "title", "T", "", "image title")
	cmd.Flags().StringVarP(&opts.workdir, "workdir", "W", opts.workdir, "working directory")
	cmd.Flags().StringVar(&opts.converter, "converter", "", "converter executable (default gridlabd)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "listen port (default: a free port)")
	cmd.Flags().BoolVar(&opts.noOpen, "no-open", false, "print the URL instead of opening the browser")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runShow renders the model to SVG and serves it until interrupted.
func (c *CLI) runShow(ctx context.Context, input string, opts *showOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := opts.pipelineOptions(input, []string{pipeline.FormatSVG})
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	svg := result.Artifacts[pipeline.FormatSVG]
	return serveSVG(ctx, svg, input, opts)
}

// serveSVG serves the rendered image on localhost until ctx is cancelled.
func serveSVG(ctx context.Context, svg []byte, title string, opts *showOpts) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", opts.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, showPage, title)
	})
	r.Get("/graph.svg", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(svg)
	})

	srv := &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	addr := fmt.Sprintf("http://%s/", ln.Addr())
	printInfo("Serving %s at %s", title, StyleLink.Render(addr))
	printDetail("Press Ctrl+C to stop")

	if !opts.noOpen {
		if err := openBrowser(addr); err != nil {
			printDetail("Copy the URL above and paste it in your browser")
		}
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// showPage is the HTML wrapper for the served image.
const showPage = `<!DOCTYPE html>
<html>
<head><title>%[1]s</title></head>
<body style="margin:0;background:white">
<img src="/graph.svg" alt="%[1]s" style="max-width:100%%;height:auto">
</body>
</html>
`

// openBrowser opens rawURL in the default browser.
func openBrowser(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
