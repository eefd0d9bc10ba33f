// Command ringcode encodes text into a ring-code image and decodes captures
// back to text.
//
// Encode: ringcode encode -level 1 -style classic -size 1024 -o out.png "text"
// Decode: ringcode decode -seq capture.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/yyyoichi/ringcode"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "encode":
		runEncode(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	case "styles":
		for _, id := range ringcode.StyleIDs() {
			fmt.Printf("%-10s %s\n", id, ringcode.StyleByID(id).Name)
		}
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ringcode encode|decode|styles [flags] ...")
	os.Exit(2)
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	var (
		level  = fs.Int("level", 1, "ecc level 0-3")
		style  = fs.String("style", ringcode.DefaultStyle, "style id (see 'ringcode styles')")
		size   = fs.Int("size", 1024, "canvas size in pixels")
		svg    = fs.Bool("svg", false, "emit vector markup instead of a raster image")
		out    = fs.String("o", "", "output file (default ring.png / ring.svg)")
		parity = fs.Bool("parity", false, "use the legacy parity redundancy format")
	)
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("encode: exactly one text argument required")
	}

	var opts []ringcode.Option
	if *parity {
		opts = append(opts, ringcode.WithParityRedundancy())
	}
	bits, err := ringcode.Encode(fs.Arg(0), ringcode.Level(*level), opts...)
	if err != nil {
		log.Fatalf("encode: %v", err)
	}

	path := *out
	st := ringcode.StyleByID(*style)
	if *svg {
		if path == "" {
			path = "ring.svg"
		}
		if err := os.WriteFile(path, []byte(ringcode.RenderSVG(bits, *size, st)), 0o644); err != nil {
			log.Fatalf("encode: %v", err)
		}
	} else {
		if path == "" {
			path = "ring.png"
		}
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("encode: %v", err)
		}
		defer f.Close()
		if err := png.Encode(f, ringcode.Render(bits, *size, st)); err != nil {
			log.Fatalf("encode: %v", err)
		}
	}
	fmt.Printf("wrote %s (%d bits, level %d, style %s)\n", path, len(bits), *level, *style)
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var (
		seq     = fs.Bool("seq", false, "sweep hypotheses sequentially in enumeration order")
		limit   = fs.Int("limit", 0, "cap on hypotheses tried (0 = unlimited)")
		timeout = fs.Duration("timeout", 0, "wall-clock cap on the search (0 = none)")
		parity  = fs.Bool("parity", false, "expect the legacy parity redundancy format")
		quiet   = fs.Bool("q", false, "suppress progress output")
	)
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("decode: exactly one image file required")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		log.Fatalf("decode: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		log.Fatalf("decode: %v", err)
	}

	var opts []ringcode.Option
	if *parity {
		opts = append(opts, ringcode.WithParityRedundancy())
	}
	if *seq {
		opts = append(opts, ringcode.WithSequentialSearch())
	}
	if *limit > 0 {
		opts = append(opts, ringcode.WithHypothesisLimit(*limit))
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	progress := func(variant int) {
		if !*quiet {
			log.Printf("trying preprocessing variant %d", variant)
		}
	}
	start := time.Now()
	text, err := ringcode.Decode(ctx, img, progress, opts...)
	if err != nil {
		if errors.Is(err, ringcode.ErrSearchExhausted) {
			log.Fatalf("decode: no valid frame found (%s)", time.Since(start).Round(time.Millisecond))
		}
		log.Fatalf("decode: %v", err)
	}
	fmt.Println(text)
}
