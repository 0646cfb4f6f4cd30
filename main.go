//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jschwinger233/resolveaddr/version"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionPrinter = func(*cli.Context) {
		fmt.Print(version.String())
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "resolveaddr",
		Usage:     "map an address inside a sold-merged object back to its original module",
		UsageText: "resolveaddr [options] <sold log> <maps file> <address>\n   resolveaddr [options] --pid <pid> <sold log> <address>",
		Version:   version.VERSION,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "pid",
				Aliases: []string{"p"},
				Value:   0,
				Usage:   "read the live maps of this process instead of a maps file",
			},
			&cli.StringFlag{
				Name:  "proc-root",
				Value: defaultProcRoot,
				Usage: "procfs mount point used with --pid",
			},
			&cli.BoolFlag{
				Name:    "dump",
				Aliases: []string{"d"},
				Value:   false,
				Usage:   "print the parsed segment and region tables",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Value: false,
				Usage: "disable colored output",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Value: false,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			if c.Bool("no-color") {
				color.NoColor = true
			}
			return nil
		},
		Action: func(ctx *cli.Context) (err error) {
			opts, rawAddr, err := parseArgs(ctx)
			if err != nil {
				return
			}
			addr, err := ParseAddress(rawAddr)
			if err != nil {
				return
			}
			r, err := NewAddrResolver(opts)
			if err != nil {
				return
			}
			r.Resolve(addr, ctx.App.Writer)
			return
		},
	}
}

func parseArgs(ctx *cli.Context) (opts Options, addr string, err error) {
	opts = Options{
		Pid:      ctx.Int("pid"),
		ProcRoot: ctx.String("proc-root"),
		Dump:     ctx.Bool("dump"),
	}
	args := ctx.Args().Slice()
	if opts.Pid != 0 {
		if len(args) != 2 {
			err = errors.Errorf("expected <sold log> <address> with --pid, got %d arguments", len(args))
			return
		}
		opts.LogPath, addr = args[0], args[1]
		return
	}
	if len(args) != 3 {
		err = errors.Errorf("expected <sold log> <maps file> <address>, got %d arguments", len(args))
		return
	}
	opts.LogPath, opts.MapsPath, addr = args[0], args[1], args[2]
	return
}
