// Command blog runs the Smile blog server and its maintenance tasks.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smile243/blog"
	"github.com/smile243/blog/siteconfig"
)

// version is set at build time via ldflags.
var version = "dev"

// CLI is the root command.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Run the HTTP server"`
	Export ExportCmd `cmd:"" help:"Print the site configuration"`
	Icons  IconsCmd  `cmd:"" help:"Generate favicon and Open Graph images from a source image"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := zerolog.InfoLevel
	if c.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	return nil
}

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr          string        `help:"Listen address" default:":3000" env:"ADDR"`
	Database      string        `help:"SQLite database path" default:"data/blog.db" env:"DATABASE_PATH"`
	StaticDir     string        `name:"static-dir" help:"Directory for icons and other static files" default:"public" env:"STATIC_DIR"`
	AdminPassword string        `name:"admin-password" help:"Admin login password" required:"" env:"ADMIN_PASSWORD"`
	SessionSecret string        `name:"session-secret" help:"Secret used to sign admin sessions" required:"" env:"ADMIN_SESSION_SECRET"`
	CookieSecure  bool          `name:"cookie-secure" help:"Mark cookies Secure (HTTPS only)" env:"COOKIE_SECURE"`
	Metrics       bool          `help:"Expose Prometheus metrics on /metrics" env:"METRICS"`
	CacheTTL      time.Duration `name:"cache-ttl" help:"How long post listings stay cached" default:"5m" env:"POST_CACHE_TTL"`
	ShutdownAfter time.Duration `name:"shutdown-timeout" help:"Grace period for in-flight requests" default:"10s"`
}

func (s *ServeCmd) Run() error {
	app := blog.New(blog.ServerConfig{
		Addr:           s.Addr,
		DatabasePath:   s.Database,
		StaticDir:      s.StaticDir,
		AdminPassword:  s.AdminPassword,
		SessionSecret:  s.SessionSecret,
		CookieSecure:   s.CookieSecure,
		PostCacheTTL:   s.CacheTTL,
		MetricsEnabled: s.Metrics,
	}, blog.WithLogger(log.Logger))
	defer app.Close()

	if err := app.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownAfter)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Format string `short:"f" help:"Output format (json|yaml)" enum:"json,yaml" default:"json"`
	Output string `short:"o" help:"Write to file instead of stdout" type:"path"`
}

func (e *ExportCmd) Run() error {
	var w io.Writer = os.Stdout
	if e.Output != "" {
		f, err := os.Create(e.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	cfg := siteconfig.Default()
	if e.Format == "yaml" {
		return siteconfig.EncodeYAML(w, cfg)
	}
	return siteconfig.EncodeJSON(w, cfg)
}

// IconsCmd implements the 'icons' command.
type IconsCmd struct {
	Source    string `arg:"" help:"Source image (png, jpeg, gif, webp or bmp)" type:"existingfile"`
	StaticDir string `name:"static-dir" help:"Directory the icons are written to" default:"public" env:"STATIC_DIR"`
}

func (i *IconsCmd) Run() error {
	f, err := os.Open(i.Source)
	if err != nil {
		return err
	}
	defer f.Close()

	written, err := blog.GenerateIcons(f, i.StaticDir, siteconfig.Default())
	if err != nil {
		return err
	}
	for _, p := range written {
		log.Info().Str("path", p).Str("dir", i.StaticDir).Msg("icon written")
	}
	return nil
}

func main() {
	// Settings from .env apply before flags are parsed so env tags see them.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blog"),
		kong.Description("The Smile blog server."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	if err := ctx.Run(); err != nil {
		log.Error().Err(err).Str("command", ctx.Command()).Msg("command failed")
		os.Exit(1)
	}
}
