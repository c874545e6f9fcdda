// Command yamlcore parses a YAML stream and reports what the grammar
// engine found: one line per document giving its root kind and tag,
// plus any accumulated warnings. It exists to exercise the library
// end to end the way the pack's cmd/go-yaml wraps go-yaml.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/willabides/yamlcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var tree bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "yamlcore [file]",
		Short: "Parse a YAML 1.2 stream and report its document structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			docs, warnings, err := yamlcore.ParseStream(string(data))
			if err != nil {
				return err
			}
			if strict && len(warnings) > 0 {
				return fmt.Errorf("%d warning(s) in strict mode, first: %s", len(warnings), warnings[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d document(s)\n", len(docs))
			for i, doc := range docs {
				fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s, tag=%s\n", i, doc.Kind, doc.Tag)
				if tree {
					printTree(cmd.OutOrStdout(), doc, 2)
				}
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "print the full representation graph, not just document roots")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero if the stream produced any warnings")
	return cmd
}

func printTree(w io.Writer, n *yamlcore.Node, indent int) {
	printTreeRec(w, n, indent, map[*yamlcore.Node]bool{})
}

// printTreeRec tracks visited nodes so an alias cycle (e.g. "&a [*a]")
// prints once, marked, instead of recursing forever.
func printTreeRec(w io.Writer, n *yamlcore.Node, indent int, seen map[*yamlcore.Node]bool) {
	prefix := make([]byte, indent)
	for i := range prefix {
		prefix[i] = ' '
	}
	if seen[n] {
		fmt.Fprintf(w, "%s*%s (already printed)\n", prefix, n.Kind)
		return
	}
	seen[n] = true
	switch n.Kind {
	case yamlcore.ScalarNode:
		fmt.Fprintf(w, "%sscalar(%s) = %q\n", prefix, n.Tag, n.Value)
	case yamlcore.SequenceNode:
		fmt.Fprintf(w, "%ssequence(%s)\n", prefix, n.Tag)
		for _, item := range n.Items {
			printTreeRec(w, item, indent+2, seen)
		}
	case yamlcore.MappingNode:
		fmt.Fprintf(w, "%smapping(%s)\n", prefix, n.Tag)
		for _, pair := range n.Pairs {
			fmt.Fprintf(w, "%skey:\n", prefix)
			printTreeRec(w, pair.Key, indent+2, seen)
			fmt.Fprintf(w, "%svalue:\n", prefix)
			printTreeRec(w, pair.Value, indent+2, seen)
		}
	}
}
