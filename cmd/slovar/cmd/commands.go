package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solatis/slovar/internal/dict"
	"github.com/solatis/slovar/internal/flat"
	"github.com/solatis/slovar/internal/merge"
	"github.com/solatis/slovar/internal/project"
	"github.com/solatis/slovar/internal/types"
)

func (a *app) flattenCmd() *cobra.Command {
	var base string
	c := &cobra.Command{
		Use:   "flatten [FILE]",
		Short: "Convert a nested document to dotted-path keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.readDict(cmd, inputArg(args))
			if err != nil {
				return err
			}
			return a.write(cmd, flat.FlattenBase(d, base, a.cfg.KeepLists))
		},
	}
	c.Flags().StringVar(&base, "base", "", "prefix for every flat key")
	c.Flags().Bool("keep-lists", false, "keep sequences as leaves")
	return c
}

func (a *app) unflattenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unflatten [FILE]",
		Short: "Rebuild a nested document from dotted-path keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.readDict(cmd, inputArg(args))
			if err != nil {
				return err
			}
			out, err := flat.Unflatten(d)
			if err != nil {
				return fmt.Errorf("failed to unflatten: %w", err)
			}
			return a.write(cmd, out)
		},
	}
}

func (a *app) extractCmd() *cobra.Command {
	var exprs []string
	c := &cobra.Command{
		Use:   "extract [FILE]",
		Short: "Project a document with field expressions",
		Long: `Project a document with field expressions such as
"name__as__display:upper", "-secret", "items..id" or "*".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.readDict(cmd, inputArg(args))
			if err != nil {
				return err
			}
			rec, err := a.parser.Parse(exprs, true)
			if err != nil {
				return fmt.Errorf("failed to parse fields: %w", err)
			}
			a.log.Debug("fields parsed", zap.Strings("only", rec.Only), zap.Strings("exclude", rec.Exclude), zap.Bool("star", rec.Star))
			out, err := project.Extract(d, rec)
			if err != nil {
				return fmt.Errorf("failed to extract: %w", err)
			}
			return a.write(cmd, out)
		},
	}
	c.Flags().StringArrayVarP(&exprs, "fields", "f", nil, "field expression (repeatable, comma-separated)")
	return c
}

func (a *app) subsetCmd() *cobra.Command {
	var keys []string
	c := &cobra.Command{
		Use:   "subset [FILE]",
		Short: "Keep or drop top-level keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.readDict(cmd, inputArg(args))
			if err != nil {
				return err
			}
			rec, err := a.parser.Parse(keys, false)
			if err != nil {
				return fmt.Errorf("failed to parse keys: %w", err)
			}
			out := d
			if !rec.Star {
				if out, err = project.Subset(d, rec.Only, rec.Exclude); err != nil {
					return fmt.Errorf("failed to subset: %w", err)
				}
			}
			return a.write(cmd, out)
		},
	}
	c.Flags().StringArrayVarP(&keys, "keys", "k", nil, "key or -key (repeatable, comma-separated)")
	return c
}

func (a *app) prefixCmd() *cobra.Command {
	var prefixes []string
	c := &cobra.Command{
		Use:   "prefix [FILE]",
		Short: "Select flat keys by prefix pattern such as a.b.*",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.readDict(cmd, inputArg(args))
			if err != nil {
				return err
			}
			out, err := project.GetByPrefix(d, prefixes)
			if err != nil {
				return fmt.Errorf("failed to select by prefix: %w", err)
			}
			return a.write(cmd, out)
		},
	}
	c.Flags().StringSliceVarP(&prefixes, "prefix", "p", nil, "prefix pattern (repeatable)")
	return c
}

func (a *app) treeCmd() *cobra.Command {
	var (
		prefix   string
		defaults string
	)
	c := &cobra.Command{
		Use:   "tree [FILE]",
		Short: "Return the subtree under a prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.readDict(cmd, inputArg(args))
			if err != nil {
				return err
			}
			seed := dict.New()
			if defaults != "" {
				if seed, err = a.readDict(cmd, defaults); err != nil {
					return err
				}
			}
			out, err := project.GetTree(d, prefix, seed)
			if err != nil {
				return fmt.Errorf("failed to get tree: %w", err)
			}
			return a.write(cmd, out)
		},
	}
	c.Flags().StringVarP(&prefix, "prefix", "p", "", "subtree prefix")
	c.Flags().StringVar(&defaults, "defaults", "", "document with default values")
	_ = c.MarkFlagRequired("prefix")
	return c
}

func (a *app) mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge DST SRC",
		Short: "Recursively merge SRC into DST, keeping DST's scalars",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := a.readDict(cmd, args[0])
			if err != nil {
				return err
			}
			src, err := a.readDict(cmd, args[1])
			if err != nil {
				return err
			}
			return a.write(cmd, merge.RecursiveMerge(dst, src))
		},
	}
}

func (a *app) updateCmd() *cobra.Command {
	var (
		policy      = types.DefaultUpdatePolicy()
		appendToSet []string
	)
	c := &cobra.Command{
		Use:   "update DST SRC",
		Short: "Update DST with SRC under an update policy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := types.ParseAppendToSet(appendToSet)
			if err != nil {
				return err
			}
			policy.AppendToSet = sets

			dst, err := a.readDict(cmd, args[0])
			if err != nil {
				return err
			}
			src, err := a.readDict(cmd, args[1])
			if err != nil {
				return err
			}
			out, err := merge.UpdateWith(dst, src, policy)
			if err != nil {
				return fmt.Errorf("failed to update: %w", err)
			}
			return a.write(cmd, out)
		},
	}
	f := c.Flags()
	f.BoolVar(&policy.Overwrite, "overwrite", true, "overwrite keys already in DST")
	f.StringSliceVar(&policy.AppendTo, "append-to", nil, "keys whose sequences are extended")
	f.StringSliceVar(&appendToSet, "append-to-set", nil, "keys extended then deduplicated, as key or key:subkey")
	f.BoolVar(&policy.Reverse, "reverse", false, "swap DST and SRC")
	f.StringSliceVar(&policy.Exclude, "exclude", nil, "SRC keys to ignore")
	return c
}

func (a *app) fromDottedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-dotted PATH VALUE",
		Short: "Build the structure holding VALUE at PATH",
		Long:  `Build the structure holding VALUE at PATH. VALUE is read as JSON when it parses, as a string otherwise.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := flat.FromDotted(args[0], parseScalar(args[1]))
			if err != nil {
				return fmt.Errorf("failed to build path: %w", err)
			}
			return a.write(cmd, out)
		},
	}
}

func (a *app) sensorCmd() *cobra.Command {
	var patterns []string
	c := &cobra.Command{
		Use:   "sensor [FILE]",
		Short: "Redact leaves whose dotted key ends with a pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.readDict(cmd, inputArg(args))
			if err != nil {
				return err
			}
			out, err := project.Sensor(d, patterns)
			if err != nil {
				return fmt.Errorf("failed to redact: %w", err)
			}
			return a.write(cmd, out)
		},
	}
	c.Flags().StringSliceVarP(&patterns, "pattern", "p", nil, "key suffix to redact (repeatable)")
	return c
}
