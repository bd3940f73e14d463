package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/svgflat"
)

// reportDiagnostics prints diags to w and, in strict mode, turns fatal ones
// into an error.
func reportDiagnostics(w io.Writer, label string, diags svgflat.Diagnostics, strict bool) error {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s\n", label, d)
	}
	if strict && diags.HasFatal() {
		return fmt.Errorf("%s: %w", label, diags.Err())
	}
	return nil
}

// mapArgs runs fn over every argument concurrently and returns the outputs
// in argument order.
func mapArgs(ctx context.Context, limit int, args []string, fn func(context.Context, string) (string, error)) ([]string, error) {
	out := make([]string, len(args))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, arg := range args {
		g.Go(func() error {
			s, err := fn(ctx, arg)
			if err != nil {
				return fmt.Errorf("argument %d: %w", i+1, err)
			}
			out[i] = s
			return nil
		})
	}
	return out, g.Wait()
}

func newFlattenCommand(e *env) *cobra.Command {
	var (
		transform string
		viewBox   string
		width     string
		height    string
		par       string
		relative  bool
		strict    bool
	)
	cmd := &cobra.Command{
		Use:   "flatten [flags] PATH_DATA...",
		Short: "Apply a transform and viewBox mapping to path data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := flattenChain(cmd.ErrOrStderr(), e, transform, viewBox, width, height, par, strict)
			if err != nil {
				return err
			}

			jobs := make([]svgflat.BakeJob, len(args))
			for i, d := range args {
				jobs[i] = svgflat.BakeJob{Chain: chain, D: d}
			}
			var popts []svgflat.PathOption
			if relative || e.conf.RelativeOutput {
				popts = append(popts, svgflat.WithRelativeOutput())
			}

			results, err := e.ctx.BakeAll(cmd.Context(), jobs, e.conf.OutputPrecision, e.conf.Workers, popts...)
			if err != nil {
				return err
			}
			for i, r := range results {
				label := fmt.Sprintf("path %d", i+1)
				if r.Err != nil {
					return fmt.Errorf("%s: %w", label, r.Err)
				}
				if err := reportDiagnostics(cmd.ErrOrStderr(), label, r.Diagnostics, strict); err != nil {
					return err
				}
				if !r.Verified {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: arc verification failed\n", label)
				}
				fmt.Fprintln(cmd.OutOrStdout(), r.D)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&transform, "transform", "t", "", "transform attribute to bake")
	fs.StringVar(&viewBox, "viewbox", "", "viewBox of the enclosing viewport")
	fs.StringVar(&width, "width", "", "viewport width (any SVG length)")
	fs.StringVar(&height, "height", "", "viewport height (any SVG length)")
	fs.StringVar(&par, "preserve-aspect-ratio", "", "preserveAspectRatio of the viewport")
	fs.BoolVarP(&relative, "relative", "r", false, "keep relative commands relative")
	fs.BoolVar(&strict, "strict", false, "fail on fatal diagnostics")
	return cmd
}

// flattenChain builds the ancestor chain for the flatten flags: an optional
// viewport followed by an optional transform group.
func flattenChain(w io.Writer, e *env, transform, viewBox, width, height, par string, strict bool) ([]svgflat.Ancestor, error) {
	var chain []svgflat.Ancestor
	if viewBox != "" {
		vb, ok := svgflat.ParseViewBox(viewBox)
		if !ok {
			return nil, fmt.Errorf("invalid viewBox %q", viewBox)
		}
		if width == "" || height == "" {
			return nil, errors.New("--viewbox needs --width and --height")
		}
		vw, err := e.ctx.Resolve(e.units, width, vb.Width)
		if err != nil {
			return nil, err
		}
		vh, err := e.ctx.Resolve(e.units, height, vb.Height)
		if err != nil {
			return nil, err
		}
		align, ok := svgflat.ParsePreserveAspectRatio(par)
		if !ok {
			return nil, fmt.Errorf("invalid preserveAspectRatio %q", par)
		}
		chain = append(chain, svgflat.SVGAncestor(svgflat.Viewport{
			Width:               vw,
			Height:              vh,
			ViewBox:             &vb,
			PreserveAspectRatio: align,
		}))
	}
	if transform != "" {
		m, diags := e.ctx.ParseTransform(transform)
		if err := reportDiagnostics(w, "transform", diags, strict); err != nil {
			return nil, err
		}
		chain = append(chain, svgflat.GroupAncestor(m))
	}
	return chain, nil
}

func newOptimizeCommand(e *env) *cobra.Command {
	var minimal, strict bool
	cmd := &cobra.Command{
		Use:   "optimize [flags] TRANSFORM...",
		Short: "Simplify transform lists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := mapArgs(cmd.Context(), e.conf.Workers, args, func(_ context.Context, s string) (string, error) {
				list, diags := e.ctx.ParseTransformList(s)
				if strict && diags.HasFatal() {
					return "", diags.Err()
				}
				res := e.ctx.OptimizeTransforms(list)
				svgflat.Logger().Debug("svgflat: optimized",
					"input", s, "rewrites", res.OptimizationCount, "verified", res.Verified)
				if minimal {
					return e.ctx.MinimalTransformString(e.ctx.ListMatrix(res.Transforms), e.conf.OutputPrecision), nil
				}
				return e.ctx.FormatTransforms(res.Transforms, e.conf.OutputPrecision), nil
			})
			if err != nil {
				return err
			}
			for _, s := range out {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "print the shortest equivalent string of the combined matrix")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on fatal diagnostics")
	return cmd
}

func newDecomposeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "decompose TRANSFORM...",
		Short: "Factor transforms into translate, rotate, scale and skew",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := mapArgs(cmd.Context(), e.conf.Workers, args, func(_ context.Context, s string) (string, error) {
				m, diags := e.ctx.ParseTransform(s)
				if diags.HasFatal() {
					return "", diags.Err()
				}
				return formatDecomposition(e, m), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), strings.Join(out, "\n"))
			return nil
		},
	}
}

func formatDecomposition(e *env, m svgflat.Matrix) string {
	c, places := e.ctx, e.conf.OutputPrecision
	d := c.Decompose(m)
	f := func(n svgflat.Num) string { return c.FormatNum(n, places) }
	deg := func(n svgflat.Num) string { return f(c.Degrees(n)) }

	var sb strings.Builder
	fmt.Fprintf(&sb, "matrix     %s\n", m)
	fmt.Fprintf(&sb, "translate  %s %s\n", f(d.TranslateX), f(d.TranslateY))
	fmt.Fprintf(&sb, "rotate     %s\n", deg(d.Rotation))
	fmt.Fprintf(&sb, "scale      %s %s\n", f(d.ScaleX), f(d.ScaleY))
	fmt.Fprintf(&sb, "skewX      %s\n", deg(d.SkewX))
	fmt.Fprintf(&sb, "skewY      %s\n", deg(d.SkewY))
	fmt.Fprintf(&sb, "singular   %t\n", d.Singular)
	fmt.Fprintf(&sb, "verified   %t (max error %s)\n", d.Verified, d.MaxError)
	fmt.Fprintf(&sb, "minimal    %s\n", c.MinimalTransformString(m, places))
	return sb.String()
}

func newViewBoxCommand(e *env) *cobra.Command {
	var par string
	cmd := &cobra.Command{
		Use:   "viewbox [flags] VIEWBOX WIDTH HEIGHT",
		Short: "Print the matrix mapping a viewBox onto a viewport",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			vb, ok := svgflat.ParseViewBox(args[0])
			if !ok {
				return fmt.Errorf("invalid viewBox %q", args[0])
			}
			w, err := e.ctx.Resolve(e.units, args[1], vb.Width)
			if err != nil {
				return err
			}
			h, err := e.ctx.Resolve(e.units, args[2], vb.Height)
			if err != nil {
				return err
			}
			align, ok := svgflat.ParsePreserveAspectRatio(par)
			if !ok {
				return fmt.Errorf("invalid preserveAspectRatio %q", par)
			}
			m := e.ctx.ViewBoxTransform(vb, align, w, h)
			fmt.Fprintln(cmd.OutOrStdout(), e.ctx.MinimalTransformString(m, e.conf.OutputPrecision))
			return nil
		},
	}
	cmd.Flags().StringVar(&par, "preserve-aspect-ratio", "", "preserveAspectRatio (default xMidYMid meet)")
	return cmd
}
