package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/bodgit/gbasprite"
	"github.com/bodgit/gbasprite/bitmap"
	"github.com/bodgit/gbasprite/tile"
	"github.com/urfave/cli/v2"
)

const defaultOutput = "output.bin"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var conversionFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "colormode",
		Value: int(tile.Mode8),
		Usage: "bits per pixel of the source and tiles, 4 or 8",
	},
	&cli.BoolFlag{
		Name:  "top-down",
		Usage: "emit tiles in display order for bottom-up bitmaps",
	},
	&cli.BoolFlag{
		Name:  "bgr",
		Usage: "read palette entries as blue, green, red",
	},
}

func newConverter(c *cli.Context) (*gbasprite.Converter, func() error, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	mode, err := tile.ParseMode(c.Int("colormode"))
	if err != nil {
		return nil, nil, err
	}
	options := gbasprite.Options{
		Mode:    mode,
		TopDown: c.Bool("top-down"),
	}
	if c.Bool("bgr") {
		options.Order = bitmap.OrderBGR
	}

	var db *gbasprite.SheetDB
	closer := func() error { return nil }
	if file := c.String("db"); file != "" {
		if db, err = gbasprite.NewSheetDB(file); err != nil {
			return nil, nil, err
		}
		closer = db.Close
	}

	return gbasprite.New(db, logger, options), closer, nil
}

func writePalette(file string, s *gbasprite.Sheet) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := tile.EncodePalette(f, s.Palette); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func quantizeFile(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := gbasprite.Quantize(w, m); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func main() {
	app := cli.NewApp()

	app.Name = "gbasprite"
	app.Usage = "Bitmap sprite sheet to Game Boy Advance tile converter"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GBASPRITE_DB"},
			Usage:   "path to conversion cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a bitmap sprite sheet to tiles",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   defaultOutput,
					Usage:   "path to write tiles to",
				},
				&cli.StringFlag{
					Name:  "palette",
					Usage: "path to write the BGR555 palette to",
				},
				&cli.BoolFlag{
					Name:  "stats",
					Usage: "print image statistics",
				},
			}, conversionFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				s, err := g.ConvertFile(c.Args().First(), c.String("output"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if c.Bool("stats") {
					if err := s.WriteStats(os.Stdout); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				if file := c.String("palette"); file != "" {
					if err := writePalette(file, s); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Convert every bitmap in a directory",
			Description: "Each FILE.bmp found is converted to FILE.bin alongside it.",
			ArgsUsage:   "DIRECTORY",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of concurrent conversions",
				},
				&cli.BoolFlag{
					Name:  "keep-going",
					Usage: "skip bitmaps that fail to convert",
				},
			}, conversionFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := g.Batch(c.Args().First(), c.Int("workers"), c.Bool("keep-going")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "quantize",
			Usage:       "Reduce an image to a 16 color indexed bitmap, convert it with --bgr",
			Description: "",
			ArgsUsage:   "IMAGE BITMAP",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := quantizeFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(fmt.Sprintf("quantize: %s", err), 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
