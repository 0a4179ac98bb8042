package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smallyu/go-toyecc/pkg/ecc"
)

// maxEnumerablePrime bounds the commands that walk every point of the curve.
const maxEnumerablePrime = 1 << 16

func parseInts(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", a)
		}
		out[i] = v
	}
	return out, nil
}

// pointArgs builds points from consecutive (x, y) argument pairs.
func pointArgs(curve *ecc.Curve, args []string) ([]ecc.Point, error) {
	vals, err := parseInts(args)
	if err != nil {
		return nil, err
	}
	points := make([]ecc.Point, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		p, err := curve.Point(vals[i], vals[i+1])
		if err != nil {
			return nil, kindError(err)
		}
		points = append(points, p)
	}
	return points, nil
}

func curveCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "curve",
		Short: "Show the configured curve and generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := cfg.Curve()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, curve)
			fmt.Fprintf(out, "discriminant: %d\n", curve.Discriminant().Value())

			if curve.Prime() <= maxEnumerablePrime {
				fmt.Fprintf(out, "points: %d\n", len(curve.Points())+1)
			}

			g, err := cfg.Generator()
			if err != nil {
				return err
			}
			n, err := curve.PointOrder(g)
			if err != nil {
				return kindError(err)
			}
			fmt.Fprintf(out, "generator: %s\norder: %d\n", g, n)
			return nil
		},
	}
}

func pointCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "point X Y",
		Short: "Validate a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := cfg.Curve()
			if err != nil {
				return err
			}
			points, err := pointArgs(curve, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is on %s\n", points[0], curve)
			return nil
		},
	}
}

func addCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "add X1 Y1 X2 Y2",
		Short: "Add two points",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := cfg.Curve()
			if err != nil {
				return err
			}
			points, err := pointArgs(curve, args)
			if err != nil {
				return err
			}
			sum, err := points[0].Add(points[1])
			if err != nil {
				return kindError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return nil
		},
	}
}

func mulCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "mul K [X Y]",
		Short: "Multiply a point, or the generator, by K",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("expected K or K X Y, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := cfg.Curve()
			if err != nil {
				return err
			}
			k, err := parseInts(args[:1])
			if err != nil {
				return err
			}

			var p ecc.Point
			if len(args) == 3 {
				points, err := pointArgs(curve, args[1:])
				if err != nil {
					return err
				}
				p = points[0]
			} else if p, err = cfg.Generator(); err != nil {
				return err
			}

			q, err := p.ScalarMul(k[0])
			if err != nil {
				return kindError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), q)
			return nil
		},
	}
}

func orderCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "order [X Y]",
		Short: "Compute the order of a point, or of the generator",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or X Y, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := cfg.Curve()
			if err != nil {
				return err
			}

			var p ecc.Point
			if len(args) == 2 {
				points, err := pointArgs(curve, args)
				if err != nil {
					return err
				}
				p = points[0]
			} else if p, err = cfg.Generator(); err != nil {
				return err
			}

			n, err := curve.PointOrder(p)
			if err != nil {
				return kindError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func pointsCmd(cfg *config) *cobra.Command {
	var withOrder bool

	cmd := &cobra.Command{
		Use:   "points",
		Short: "List every affine point of the curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := cfg.Curve()
			if err != nil {
				return err
			}
			if curve.Prime() > maxEnumerablePrime {
				return fmt.Errorf("prime %d is too large to enumerate (max %d)", curve.Prime(), maxEnumerablePrime)
			}

			out := cmd.OutOrStdout()
			for _, p := range curve.Points() {
				if !withOrder {
					fmt.Fprintln(out, p)
					continue
				}
				n, err := curve.PointOrder(p)
				if err != nil {
					fmt.Fprintf(out, "%s order > %d\n", p, curve.Prime()+1)
					continue
				}
				fmt.Fprintf(out, "%s order %d\n", p, n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withOrder, "order", false, "also print the order of every point")
	return cmd
}
