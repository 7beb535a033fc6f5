// Command patchmatch is the reference CLI spec.md §6 describes, in the
// stdlib-flag idiom of Ripounet-guetzli-patapon/guetzli.go and
// deepteams-webp/cmd/gwebp/main.go: positional file arguments plus a small
// set of algorithm flags, no subcommands or third-party flag library.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ashgillman/patchmatch"
	"github.com/ashgillman/patchmatch/imageio"
)

// Exit codes, spec.md §6.
const (
	exitOK                  = 0
	exitIOError             = 1
	exitInvalidArguments    = 2
	exitNoValidSourceRegion = 3
	exitInternalAssertion   = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("patchmatch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	radius := fs.Int("radius", 3, "patch radius r (patches are (2r+1)x(2r+1))")
	iters := fs.Int("iters", 4, "number of propagate+search iterations")
	initFlag := fs.String("init", "random", "seeding strategy: random|boundary")
	distFlag := fs.String("distance", "ssd", "patch distance: ssd|pca")
	deterministic := fs.Bool("deterministic", true, "seed the RNG from 0 instead of the clock")
	verbose := fs.Bool("v", false, "log stage transitions to stderr")

	if err := fs.Parse(args); err != nil {
		return exitInvalidArguments
	}
	if fs.NArg() != 4 {
		fmt.Fprintln(stderr, "usage: patchmatch [flags] <image> <source_mask> <target_mask> <output_nnf>")
		return exitInvalidArguments
	}
	imagePath, sourceMaskPath, targetMaskPath, outputPath := fs.Arg(0), fs.Arg(1), fs.Arg(2), fs.Arg(3)

	img, sourceMask, targetMask, err := loadInputs(imagePath, sourceMaskPath, targetMaskPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitIOError
	}

	cfg := patchmatch.DefaultConfig(img, sourceMask)
	cfg.Radius = *radius
	cfg.Iterations = *iters
	cfg.Random = !*deterministic
	if *verbose {
		cfg.Logger = patchmatch.NewLogger(stderr)
	}

	switch *initFlag {
	case "random":
		cfg.Init = patchmatch.InitRandom
	case "boundary":
		cfg.Init = patchmatch.InitBoundary
	default:
		fmt.Fprintf(stderr, "patchmatch: unrecognized --init %q (want random|boundary)\n", *initFlag)
		return exitInvalidArguments
	}

	switch *distFlag {
	case "ssd":
		cfg.Distance = &patchmatch.SSD{Image: img, SourceMask: sourceMask}
	case "pca":
		fmt.Fprintln(stderr, "patchmatch: --distance pca requires a precomputed basis; not available from the CLI")
		return exitInvalidArguments
	default:
		fmt.Fprintf(stderr, "patchmatch: unrecognized --distance %q (want ssd|pca)\n", *distFlag)
		return exitInvalidArguments
	}

	driver := patchmatch.NewDriver(cfg)
	nnf, diag, err := driver.Compute(img, sourceMask, targetMask)
	if err != nil {
		if errors.Is(err, patchmatch.ErrNoValidSourceRegions) {
			fmt.Fprintln(stderr, err)
			return exitNoValidSourceRegion
		}
		if errors.Is(err, patchmatch.ErrInvalidConfiguration) || errors.Is(err, patchmatch.ErrMissingFunctor) {
			fmt.Fprintln(stderr, err)
			return exitInvalidArguments
		}
		fmt.Fprintln(stderr, err)
		return exitInternalAssertion
	}

	if diag.RemainingInvalid > 0 {
		fmt.Fprintf(stderr, "patchmatch: warning: %d pixels still unmatched after force-fill\n", diag.RemainingInvalid)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitIOError
	}
	defer out.Close()

	centers := nnf.CentersImage()
	if err := imageio.WriteCenters(out, centers); err != nil {
		fmt.Fprintln(stderr, err)
		return exitIOError
	}

	fmt.Fprintf(stdout, "wrote %s (%d pixels still unmatched)\n", outputPath, diag.RemainingInvalid)
	return exitOK
}

func loadInputs(imagePath, sourceMaskPath, targetMaskPath string) (*patchmatch.FloatImage, *patchmatch.Mask, *patchmatch.Mask, error) {
	img, err := readFile(imagePath, imageio.ReadImage)
	if err != nil {
		return nil, nil, nil, err
	}
	sourceMask, err := readFile(sourceMaskPath, imageio.ReadMask)
	if err != nil {
		return nil, nil, nil, err
	}
	targetMask, err := readFile(targetMaskPath, imageio.ReadMask)
	if err != nil {
		return nil, nil, nil, err
	}
	return img, sourceMask, targetMask, nil
}

func readFile[T any](path string, decode func(r io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	v, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return v, nil
}
