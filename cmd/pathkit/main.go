// Command pathkit simplifies, heals, scores and tiles the paths of an SVG
// document.
//
// Usage:
//
//	pathkit [flags] file.svg
//
// The resulting document is written to standard output (or -o), a health
// report to standard error. A file name of "-" reads standard input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"honnef.co/go/pathkit"
)

type options struct {
	op          string
	tolerance   float64
	heal        int
	policy      string
	output      string
	quiet       bool
	verbose     bool
	alignSource string
	alignTarget string
	align       pathkit.AlignParams
	mode        string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "pathkit: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	opts := options{align: pathkit.DefaultAlignParams}
	fs := flag.NewFlagSet("pathkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.op, "op", "score", "operation: simplify, heal, score or align")
	fs.Float64Var(&opts.tolerance, "tolerance", 0.5, "simplification tolerance, in percent of each sub-path's bounding box diagonal")
	fs.IntVar(&opts.heal, "heal", -1, "number of anchors to heal per path, -1 for the optimal count")
	fs.StringVar(&opts.policy, "policy", "", "YAML file with scoring policy overrides")
	fs.StringVar(&opts.output, "o", "", "write the resulting document to this file instead of standard output")
	fs.BoolVar(&opts.quiet, "q", false, "don't print the health report")
	fs.BoolVar(&opts.verbose, "v", false, "log debug messages")
	fs.StringVar(&opts.alignSource, "align-source", "", "ID of the path to repeat")
	fs.StringVar(&opts.alignTarget, "align-target", "", "ID of the path to repeat along")
	fs.IntVar(&opts.align.RepeatCount, "count", opts.align.RepeatCount, "number of copies")
	fs.Float64Var(&opts.align.RangeStart, "range-start", opts.align.RangeStart, "start of the placement range, as a fraction of the target's length")
	fs.Float64Var(&opts.align.RangeEnd, "range-end", opts.align.RangeEnd, "end of the placement range, as a fraction of the target's length")
	fs.Float64Var(&opts.align.Jitter, "jitter", 0, "random displacement, as a fraction of the spacing")
	fs.Float64Var(&opts.align.Rotation, "rotation", 0, "rotation added to the tangent, in degrees")
	fs.Float64Var(&opts.align.Offset, "offset", 0, "offset along the target's normal")
	fs.Float64Var(&opts.align.Scale, "scale", opts.align.Scale, "scale of the copies")
	fs.Float64Var(&opts.align.RandomRotation, "random-rotation", 0, "maximum random rotation, in degrees")
	fs.Float64Var(&opts.align.RandomScale, "random-scale", 0, "maximum random scale, as a fraction")
	fs.Float64Var(&opts.align.RandomOffset, "random-offset", 0, "maximum random offset")
	fs.Uint64Var(&opts.align.Seed, "seed", 1, "random seed")
	fs.StringVar(&opts.mode, "mode", "preserve", "alignment mode: preserve or deform")
	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	switch opts.mode {
	case "preserve":
		opts.align.Mode = pathkit.PreserveShape
	case "deform":
		opts.align.Mode = pathkit.DeformToPath
	default:
		return options{}, nil, fmt.Errorf("unknown alignment mode %q", opts.mode)
	}
	return opts, fs.Args(), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, rest, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return errors.New("expected exactly one input file")
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	pathkit.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer pathkit.SetLogger(nil)

	pol := pathkit.DefaultPolicy()
	if opts.policy != "" {
		if pol, err = pathkit.LoadPolicy(opts.policy); err != nil {
			return err
		}
	}

	data, err := readInput(rest[0], stdin)
	if err != nil {
		return err
	}
	doc, err := pathkit.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", rest[0], err)
	}

	result, err := apply(doc, opts)
	if err != nil {
		return err
	}

	if opts.op != "score" {
		out := pathkit.Serialize(result)
		if opts.output != "" {
			if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
		} else if _, err := io.WriteString(stdout, out); err != nil {
			return err
		}
	}

	if !opts.quiet {
		rep := newReport(opts.op, pol, doc, result)
		if opts.op == "score" {
			_, err = io.WriteString(stdout, rep.render())
		} else {
			_, err = io.WriteString(stderr, rep.render())
		}
	}
	return err
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func apply(doc pathkit.Document, opts options) (pathkit.Document, error) {
	switch opts.op {
	case "score":
		return doc, nil
	case "simplify":
		pl := pathkit.Pipeline{pathkit.SimplifyStage{
			TolerancePercent: opts.tolerance,
			Options:          pathkit.DefaultSimplifyOptions,
		}}
		return pl.TransformDocument(doc), nil
	case "heal":
		pl := pathkit.Pipeline{pathkit.HealStage{Count: opts.heal}}
		return pl.TransformDocument(doc), nil
	case "align":
		src, ok := doc.PathByID(opts.alignSource)
		if !ok {
			return doc, fmt.Errorf("no path with ID %q", opts.alignSource)
		}
		dst, ok := doc.PathByID(opts.alignTarget)
		if !ok {
			return doc, fmt.Errorf("no path with ID %q", opts.alignTarget)
		}
		out := doc.Clone()
		out.Paths = append(out.Paths, pathkit.AlignToPath(src, dst, opts.align)...)
		return out, nil
	default:
		return doc, fmt.Errorf("unknown operation %q", opts.op)
	}
}
