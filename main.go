package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cssvars/api"
	"cssvars/config"
	"cssvars/export"
	"cssvars/reload"
	"cssvars/theme"
)

//go:embed definitions
var definitionsFS embed.FS

//go:embed web/index.html
var indexHTML string

var (
	dataDir    string
	listen     string
	listenPort int
	outDir     string
	exportAll  bool
	appVersion = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "cssvars",
	Short: "cssvars – CSS variable theme registry",
	Long:  "cssvars serves CSS custom-property themes scoped under data-theme-* attributes and lets clients edit them live.",
	Run:   run,
}

var renderCmd = &cobra.Command{
	Use:   "render [group...]",
	Short: "Render theme CSS",
	Long:  "Render the CSS of the given style groups (all groups when none are named) to stdout, or to one file per group with --out or --export.",
	RunE:  runRender,
}

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List exported CSS files",
	Long:  "List the style groups that have a <group>.css file in the export directory (the configured one, or --out).",
	Args:  cobra.NoArgs,
	RunE:  runExports,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage cssvars configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default " + config.FileName + " file in the data directory (or current directory if not specified).",
	Run:   runConfigGenerate,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", wd, "Data directory (default: current directory)")
	rootCmd.Flags().StringVar(&listen, "listen", "all", "IP address to listen on (default: all)")
	rootCmd.Flags().IntVar(&listenPort, "listen-port", 8080, "Port to listen on (default: 8080)")

	renderCmd.Flags().StringVar(&outDir, "out", "", "Write <group>.css files into this directory instead of stdout")
	renderCmd.Flags().BoolVar(&exportAll, "export", false, "Write <group>.css files into the configured export directory")

	exportsCmd.Flags().StringVar(&outDir, "out", "", "Export directory to list instead of the configured one")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(renderCmd, exportsCmd, configCmd)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	dataDirAbs, err := filepath.Abs(dataDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg, err := config.Load(dataDirAbs)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.DataDir = dataDirAbs

	if cmd.Flags().Changed("listen") || cmd.Flags().Changed("listen-port") {
		if listen != "" && listen != "all" {
			cfg.ListenAddr = net.JoinHostPort(listen, fmt.Sprint(listenPort))
		} else {
			cfg.ListenAddr = fmt.Sprintf(":%d", listenPort)
		}
	}
	return cfg, nil
}

// loadDefinitions reads the embedded defaults, then the definitions
// directory, which overrides groups with the same code.
func loadDefinitions(cfg config.Config) ([]theme.GroupDefinition, error) {
	defaults, err := fs.Sub(definitionsFS, "definitions")
	if err != nil {
		return nil, fmt.Errorf("open embedded definitions: %w", err)
	}

	sources := []fs.FS{defaults}
	dir := cfg.Resolve(cfg.DefinitionsDir)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		sources = append(sources, os.DirFS(dir))
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat definitions dir: %w", err)
	}

	return theme.LoadSources(sources...)
}

func run(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		log.Fatal(err)
	}

	defs, err := loadDefinitions(cfg)
	if err != nil {
		log.Fatalf("load definitions: %v", err)
	}

	manager := theme.NewManager(nil)
	manager.Replace(defs)
	themeHandler := theme.NewHandler(manager)
	apiServer := api.NewServer(manager)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// A reload replaces every group, discarding edits made through the API.
	reloader := reload.New(cfg.Resolve(cfg.DefinitionsDir), cfg.ReloadInterval, func(context.Context) error {
		defs, err := loadDefinitions(cfg)
		if err != nil {
			return err
		}
		manager.Replace(defs)
		return nil
	})
	reloader.Start(ctx)

	indexTemplate := template.Must(template.New("index").Parse(indexHTML))

	mux := http.NewServeMux()
	apiServer.Register(mux)
	mux.HandleFunc("GET /api/theme", themeHandler.HandleTheme)
	mux.HandleFunc("GET /api/types", themeHandler.HandleTypes)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		type indexGroup struct {
			Code     string
			Name     string
			Current  string
			MenuHTML template.HTML
		}

		var groups []indexGroup
		for _, g := range manager.Snapshots() {
			current := ""
			if len(g.Types) > 0 {
				current = g.Types[0].Code
			}
			groups = append(groups, indexGroup{
				Code:     g.Code,
				Name:     g.Name,
				Current:  current,
				MenuHTML: template.HTML(themeHandler.GenerateTypeMenuHTML(g.Code, current)),
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexTemplate.Execute(w, map[string]any{
			"Title":      "cssvars",
			"Groups":     groups,
			"AppVersion": appVersion,
			"Year":       time.Now().Year(),
		})
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	printListeningAddresses(cfg.ListenAddr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	defs, err := loadDefinitions(cfg)
	if err != nil {
		return fmt.Errorf("load definitions: %w", err)
	}
	manager := theme.NewManager(defs)

	target := outDir
	if target == "" && exportAll {
		target = cfg.Resolve(cfg.ExportDir)
	}

	if target == "" {
		css, err := manager.CSS(args...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), css)
		return err
	}

	codes := args
	if len(codes) == 0 {
		codes = manager.ListGroups()
	}

	store := export.New(target)
	if err := store.EnsureDirs(); err != nil {
		return fmt.Errorf("ensure export dir: %w", err)
	}
	for _, code := range codes {
		css, err := manager.CSS(code)
		if err != nil {
			return err
		}
		path, err := store.WriteCSS(code, css)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}
	return nil
}

func runExports(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	target := outDir
	if target == "" {
		target = cfg.Resolve(cfg.ExportDir)
	}

	codes, err := export.New(target).List()
	if err != nil {
		return fmt.Errorf("list exports: %w", err)
	}
	if len(codes) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no exports in %s\n", target)
		return nil
	}
	for _, code := range codes {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, filepath.Join(target, code+".css"))
	}
	return nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) {
	dataDirAbs, err := filepath.Abs(dataDir)
	if err != nil {
		log.Fatalf("resolve data dir: %v", err)
	}

	cfg := config.Default()
	cfg.DataDir = dataDirAbs

	cfgPath := filepath.Join(dataDirAbs, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		log.Fatalf("config file already exists: %s", cfgPath)
	}

	if err := config.Save(cfg); err != nil {
		log.Fatalf("failed to save config: %v", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated default config file: %s\n", cfgPath)
}

func printListeningAddresses(addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		log.Printf("listening on http://%s", addr)
		return
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		addrs, err := net.InterfaceAddrs()
		if err == nil {
			log.Println("listening on:")
			for _, a := range addrs {
				if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
					if ipnet.IP.To4() != nil {
						log.Printf("  http://%s:%s", ipnet.IP.String(), port)
					}
				}
			}
			log.Printf("  http://localhost:%s", port)
		} else {
			log.Printf("listening on http://0.0.0.0:%s", port)
		}
	} else {
		log.Printf("listening on http://%s:%s", host, port)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
