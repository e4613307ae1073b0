package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ava12/picoscan/examples/css"
	"github.com/ava12/picoscan/examples/markup"
	"github.com/ava12/picoscan/pattern"
	"github.com/ava12/picoscan/rules"
	"github.com/ava12/picoscan/scan"
	"github.com/ava12/picoscan/token"
)

// Word is a token produced by the "words" rule set.
type Word struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

func wordRule(kind string) rules.Handler {
	return func(_ pattern.Groups, ctx *rules.Context) (token.Token, error) {
		pos := ctx.Pos()
		return Word{kind, ctx.Match, pos.Line(), pos.Col()}, nil
	}
}

var wordScanner = scan.MustNew(rules.Map{
	{"number", []any{`\d+(?:\.\d+)?`, wordRule("number")}},
	{"word", []any{`[\p{L}_][\p{L}\p{N}_]*`, wordRule("word")}},
	{"punct", []any{`[^\s\p{L}\p{N}_]`, wordRule("punct")}},
})

func newScanCmd() *cobra.Command {
	var format string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Scan a file with a bundled rule set and dump the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := readInput(filename)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			var result any
			switch format {
			case "css":
				result, err = css.Parse(filename, string(data))
			case "markup":
				result, err = markup.Parse(filename, string(data))
			case "words":
				var res scan.Result
				res, err = wordScanner.Flat(filename, string(data))
				result = res.Tokens
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
			if err != nil {
				return fmt.Errorf("scan %s: %w", filename, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				return nil
			}

			dump(out, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "words", "rule set (css, markup, words)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}

func dump(out io.Writer, result any) {
	switch r := result.(type) {
	case map[string]any:
		dumpStyles(out, "", r)
	case []markup.Node:
		for _, n := range r {
			fmt.Fprintln(out, n.String())
		}
	case token.Tokens:
		for _, t := range r {
			w := t.(Word)
			fmt.Fprintf(out, "%d:%d\t%s\t%q\n", w.Line, w.Col, w.Kind, w.Text)
		}
	default:
		fmt.Fprintln(out, result)
	}
}

func dumpStyles(out io.Writer, prefix string, styles map[string]any) {
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := styles[k].(type) {
		case map[string]any:
			dumpStyles(out, prefix+k+" ", v)
		default:
			fmt.Fprintf(out, "%s%s: %v\n", prefix, k, v)
		}
	}
}
