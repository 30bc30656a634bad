package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itchan-dev/chatkit/client"
	"github.com/itchan-dev/chatkit/shared/config"
	"github.com/itchan-dev/chatkit/shared/domain"
	"github.com/itchan-dev/chatkit/shared/logger"
	"github.com/itchan-dev/chatkit/shared/storage/pg"
	"github.com/itchan-dev/chatkit/ui"
)

type uploadList []string

func (u *uploadList) String() string {
	return strings.Join(*u, ",")
}

func (u *uploadList) Set(v string) error {
	*u = append(*u, v)
	return nil
}

func main() {
	var (
		configFolder string
		input        string
		preview      bool
		store        bool
		spoiler      bool
		uploads      uploadList
	)
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.StringVar(&input, "components", "", "path to a JSON array of components (- for stdin)")
	flag.BoolVar(&preview, "preview", false, "print an HTML preview of every text display")
	flag.BoolVar(&store, "store", false, "save the normalized layout to the configured database")
	flag.BoolVar(&spoiler, "spoiler", false, "mark files added with -upload as spoilers")
	flag.Var(&uploads, "upload", "local file to attach as a file component (repeatable)")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	// stdout carries the layout payload
	logger.InitializeWriter(os.Stderr, cfg.Public.Log.Level, cfg.Public.Log.JSON)
	log := logger.Component("chatkit-layout")

	view, err := loadView(input)
	if err != nil {
		log.Error("failed to load components", "error", err)
		os.Exit(1)
	}
	for _, path := range uploads {
		if err := attachUpload(view, path, spoiler); err != nil {
			log.Error("failed to attach upload", "path", path, "error", err)
			os.Exit(1)
		}
	}
	if err := view.Validate(); err != nil {
		log.Error("layout is invalid", "view", view.ID(), "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(view.ToComponents(), "", "  ")
	if err != nil {
		log.Error("failed to encode layout", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if preview {
		printPreviews(view)
	}

	if store {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := storeView(ctx, cfg, view, out); err != nil {
			log.Error("failed to store layout", "view", view.ID(), "error", err)
			os.Exit(1)
		}
		log.Info("layout stored", "view", view.ID(), "items", view.Len())
	}
}

func loadView(input string) (*ui.LayoutView, error) {
	switch input {
	case "":
		return ui.NewLayoutView()
	case "-":
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return ui.LayoutViewFromComponents(raw)
	}
	raw, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("can't read %s: %w", input, err)
	}
	return ui.LayoutViewFromComponents(raw)
}

func attachUpload(view *ui.LayoutView, path string, spoiler bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	u, err := domain.NewUploadFromReader(filepath.Base(path), f)
	if err != nil {
		return err
	}
	u.Spoiler = spoiler
	logger.Log.Debug("upload read", "upload", u.String())
	return view.Add(ui.NewFileFromUpload(u))
}

func printPreviews(view *ui.LayoutView) {
	var walk func(items []ui.Item)
	walk = func(items []ui.Item) {
		for _, item := range items {
			switch it := item.(type) {
			case *ui.TextDisplay:
				html, err := it.PreviewHTML()
				if err != nil {
					logger.Log.Warn("failed to render preview", "error", err)
					continue
				}
				fmt.Println(html)
			case *ui.Container:
				walk(it.Children())
			case *ui.Section:
				walk(it.Children())
			}
		}
	}
	walk(view.Children())
}

const createLayoutsTable = `CREATE TABLE IF NOT EXISTS layouts (
	id TEXT PRIMARY KEY,
	components JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func storeView(ctx context.Context, cfg *config.Config, view *ui.LayoutView, payload []byte) error {
	c, err := client.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	db := c.MustDatabase()
	if _, err := db.Execute(ctx, createLayoutsTable); err != nil {
		return err
	}
	_, err = db.Execute(ctx, "INSERT INTO layouts (id, components) VALUES ($1, $2)", view.ID(), string(payload))
	if pg.IsUniqueViolation(err) {
		return fmt.Errorf("layout %s already stored", view.ID())
	}
	return err
}
