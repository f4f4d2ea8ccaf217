package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bodgit/bluemarble"
	"github.com/bodgit/bluemarble/codec"
	"github.com/bodgit/bluemarble/convert"
	"github.com/bodgit/bluemarble/metadata"
	"github.com/bodgit/bluemarble/palette"
	"github.com/bodgit/bluemarble/tile"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	defaultDB = "bluemarble.db"
	version   = "1.0.0"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if c.Bool("verbose") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadRegistry(c *cli.Context) (*palette.Registry, error) {
	file := c.String("palette")
	if file == "" {
		return palette.New(palette.Default), nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := palette.Load(f)
	if err != nil {
		return nil, err
	}
	return palette.New(entries), nil
}

// withDB runs fn with an open template database and logger.
func withDB(c *cli.Context, fn func(*bluemarble.TemplateDB, *zap.Logger) error) error {
	logger, err := newLogger(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer logger.Sync()

	db, err := bluemarble.NewTemplateDB(c.String("db"), logger)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	if err := fn(db, logger); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func create(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	coords, err := tile.ParseCoords(c.String("coords"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	return withDB(c, func(db *bluemarble.TemplateDB, logger *zap.Logger) error {
		r, err := loadRegistry(c)
		if err != nil {
			return err
		}

		e, err := bluemarble.New(r, logger,
			bluemarble.WithTileSize(c.Int("tile-size")),
			bluemarble.WithShredFactor(c.Int("shred")),
			bluemarble.WithHideOther(c.Bool("hide-other")),
			bluemarble.WithWorkers(c.Int("workers")),
			bluemarble.WithMaxInspectPixels(c.Int("max-pixels")))
		if err != nil {
			return err
		}

		f, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()

		t := bluemarble.NewTemplate(c.String("name"), coords)
		t.SortID = c.Int("sort")
		t.AuthorID = c.String("author")
		t.URL = c.String("url")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := e.CreateTemplateTiles(ctx, t, f)
		if err != nil {
			return err
		}

		if err := db.Save(t, result.Buffers); err != nil {
			return err
		}

		fmt.Printf("%s: %d tiles, %d of %d pixels required\n", t.Key(), len(result.Keys), t.RequiredPixelCount, t.PixelCount)
		return nil
	})
}

func list(c *cli.Context) error {
	return withDB(c, func(db *bluemarble.TemplateDB, _ *zap.Logger) error {
		templates, err := db.List()
		if err != nil {
			return err
		}
		for _, t := range templates {
			fmt.Printf("%s\t%s\t%s\t%d tiles\n", t.Key(), t.DisplayName, t.Coords, len(t.TilePrefixes))
		}
		return nil
	})
}

func colors(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	return withDB(c, func(db *bluemarble.TemplateDB, _ *zap.Logger) error {
		r, err := loadRegistry(c)
		if err != nil {
			return err
		}

		t, _, err := db.Load(c.Args().First())
		if err != nil {
			return err
		}

		for _, row := range t.SortedPalette() {
			m, ok := r.Meta(row.Key)
			state := "on"
			if !row.Enabled {
				state = "off"
			}
			fmt.Printf("%-11s\t%s\t%s\n", row.Key, state, palette.Label(row.Key, m, ok, row.Count))
		}
		return nil
	})
}

func toggle(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	k, err := palette.ParseKey(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}

	return withDB(c, func(db *bluemarble.TemplateDB, _ *zap.Logger) error {
		return db.SetEnabled(c.Args().First(), k, !c.Bool("off"))
	})
}

func export(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	return withDB(c, func(db *bluemarble.TemplateDB, logger *zap.Logger) error {
		_, buffers, err := db.Load(c.Args().First())
		if err != nil {
			return err
		}

		dir := c.Args().Get(1)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		for k, b := range buffers {
			file := filepath.Join(dir, k+".png")
			if err := os.WriteFile(file, b, 0o644); err != nil {
				return err
			}
			logger.Debug("exported tile", zap.String("file", file))
		}
		return nil
	})
}

func dump(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	return withDB(c, func(db *bluemarble.TemplateDB, _ *zap.Logger) error {
		templates, err := db.List()
		if err != nil {
			return err
		}

		md := metadata.New()
		md.Version = version
		for _, summary := range templates {
			t, buffers, err := db.Load(summary.Key())
			if err != nil {
				return err
			}
			if err := md.Set(t.Key(), t.Record(buffers)); err != nil {
				return err
			}
		}

		b, err := md.MarshalBinary()
		if err != nil {
			return err
		}

		return os.WriteFile(c.Args().First(), b, 0o644)
	})
}

func load(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	return withDB(c, func(db *bluemarble.TemplateDB, logger *zap.Logger) error {
		b, err := os.ReadFile(c.Args().First())
		if err != nil {
			return err
		}

		md := metadata.New()
		if err := md.UnmarshalBinary(b); err != nil {
			return err
		}

		for _, k := range md.Keys() {
			rec, _ := md.Get(k)
			t, buffers, err := bluemarble.TemplateFromRecord(k, rec)
			if err != nil {
				return err
			}
			if err := db.Save(t, buffers); err != nil {
				return err
			}
			logger.Info("loaded template", zap.String("template", k), zap.Int("tiles", len(buffers)))
		}
		return nil
	})
}

func remove(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	return withDB(c, func(db *bluemarble.TemplateDB, _ *zap.Logger) error {
		return db.Delete(c.Args().First())
	})
}

func convertImage(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	r, err := loadRegistry(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	in, err := os.Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer in.Close()

	m, err := codec.Decode(in)
	if err != nil {
		return cli.Exit(err, 1)
	}

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer out.Close()

	converted := convert.Convert(m, r, convert.Options{
		MaxColors: c.Int("colors"),
		Dither:    c.Bool("dither"),
	})
	if err := codec.Encode(out, converted); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "bluemarble"
	app.Usage = "Pixel canvas template tiling utility"
	app.Version = version

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BLUEMARBLE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.StringFlag{
			Name:    "palette",
			EnvVars: []string{"BLUEMARBLE_PALETTE"},
			Usage:   "path to JSON palette, built-in palette if unset",
		},
		&cli.IntFlag{
			Name:    "tile-size",
			EnvVars: []string{"BLUEMARBLE_TILE_SIZE"},
			Value:   tile.DefaultSize,
			Usage:   "canvas tile size in pixels",
		},
		&cli.IntFlag{
			Name:    "shred",
			EnvVars: []string{"BLUEMARBLE_SHRED"},
			Value:   tile.DefaultShredFactor,
			Usage:   "odd enlargement factor of each template pixel",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "create",
			Usage:     "Create template tiles from an image",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "coords",
					Required: true,
					Usage:    "template position as \"tx, ty, px, py\"",
				},
				&cli.StringFlag{
					Name:  "name",
					Usage: "display name",
				},
				&cli.IntFlag{
					Name:  "sort",
					Usage: "sort id",
				},
				&cli.StringFlag{
					Name:  "author",
					Usage: "author id",
				},
				&cli.StringFlag{
					Name:  "url",
					Usage: "source URL",
				},
				&cli.BoolFlag{
					Name:  "hide-other",
					Usage: "hide pixels whose colour is not in the palette",
				},
				&cli.IntFlag{
					Name:  "workers",
					Usage: "number of tiles rendered concurrently, one per CPU if unset",
				},
				&cli.IntFlag{
					Name:  "max-pixels",
					Usage: "largest image whose pixels are counted, no limit if unset",
				},
			},
			Action: create,
		},
		{
			Name:   "list",
			Usage:  "List stored templates",
			Action: list,
		},
		{
			Name:      "colors",
			Usage:     "Show the colour filter of a template",
			ArgsUsage: "KEY",
			Action:    colors,
		},
		{
			Name:      "toggle",
			Usage:     "Enable or disable a colour of a template",
			ArgsUsage: "KEY COLOR",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "off",
					Usage: "disable the colour",
				},
			},
			Action: toggle,
		},
		{
			Name:      "export",
			Usage:     "Write the tiles of a template as PNG files",
			ArgsUsage: "KEY DIRECTORY",
			Action:    export,
		},
		{
			Name:      "dump",
			Usage:     "Write every template to a bundle",
			ArgsUsage: "FILE",
			Action:    dump,
		},
		{
			Name:      "load",
			Usage:     "Import templates from a bundle",
			ArgsUsage: "FILE",
			Action:    load,
		},
		{
			Name:      "delete",
			Usage:     "Delete a template",
			ArgsUsage: "KEY",
			Action:    remove,
		},
		{
			Name:      "convert",
			Usage:     "Snap an image onto the palette",
			ArgsUsage: "IN OUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Usage: "limit the number of colours",
				},
				&cli.BoolFlag{
					Name:  "dither",
					Usage: "use Floyd-Steinberg dithering",
				},
			},
			Action: convertImage,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
