// searchsql shows how search box text is tokenized and turned into SQL, and can
// run visitor searches against a local sqlite database.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	go_search "github.com/PayRam/go-search"
	"github.com/PayRam/go-search/config"
	"github.com/PayRam/go-search/internal/db"
	"github.com/PayRam/go-search/internal/log"
	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/request"
	"github.com/PayRam/go-search/response"
	"github.com/PayRam/go-search/sqlsafe"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "searchsql",
		Short: "Tokenize search text and build safe SQL predicates",
		Long: `searchsql turns free-text search strings into SQL predicates.

Search syntax:
  word             matches any default column
  "a phrase"       spaces kept, "" inside a phrase is a literal quote
  field:word       matches the columns mapped to field
  field:"phrase"   both

Environment Variables:
  SEARCH_ESCAPE_CHAR         LIKE escape character (default: !)
  SEARCH_PARAM_PREFIX        parameter name prefix (default: p)
  SEARCH_FIX_PARSER_QUIRKS   use the corrected tokenizer (true/false)
  SEARCH_DB_PATH             sqlite database for visitor commands
  SEARCH_LOG_SQL             log statements (true/false)`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newParseCmd(cfg),
		newBuildCmd(cfg),
		newQuoteCmd(),
		newVisitorsCmd(cfg),
		newCheckoutStaleCmd(cfg),
	)
	return rootCmd
}

func newParseCmd(cfg *config.Config) *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "parse <text>...",
		Short: "Print the terms a search string is split into",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			terms := go_search.NewTermParser(cfg).Parse(strings.Join(args, " "))
			if dump {
				fmt.Fprint(cmd.OutOrStdout(), spew.Sdump(terms))
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), terms)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the parsed terms with spew")
	return cmd
}

type buildFlags struct {
	columns []string
	fields  []string
	join    string
	mode    string
	escape  string
	prefix  string
}

func newBuildCmd(cfg *config.Config) *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build <text>...",
		Short: "Print the predicate for a search string",
		Example: `  searchsql build 'ann email:"@acme"' \
    --column visitors.first_name --column visitors.last_name \
    --field email=visitors.email --mode param`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.OutOrStdout(), cfg, f, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringArrayVarP(&f.columns, "column", "c", nil, "Default column, [schema.]table.column[:kind[:size]] (repeatable)")
	cmd.Flags().StringArrayVarP(&f.fields, "field", "f", nil, "Field mapping, name=[schema.]table.column[:kind[:size]] (repeatable)")
	cmd.Flags().StringVarP(&f.join, "join", "j", "where", "Leading keyword: where, and, or")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "inline", "Value mode: inline, param, dynamic")
	cmd.Flags().StringVar(&f.escape, "escape", "", "LIKE escape character (default from config)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Parameter name prefix (default from config)")
	return cmd
}

func runBuild(out io.Writer, cfg *config.Config, f buildFlags, text string) error {
	join, err := models.ParseQueryJoinKind(f.join)
	if err != nil {
		return err
	}
	mode, err := models.ParseValueMode(f.mode)
	if err != nil {
		return err
	}
	opts := request.BuildOptions{Mode: mode, ParamPrefix: f.prefix}
	if f.escape != "" {
		r := []rune(f.escape)
		if len(r) != 1 {
			return fmt.Errorf("%w: --escape takes a single character", sqlsafe.ErrInvalidArgument)
		}
		opts.EscapeChar = r[0]
	}

	plan := request.SearchPlan{Fields: map[string][]models.ColumnTarget{}}
	for _, column := range f.columns {
		target, err := request.ParseColumnTarget(column)
		if err != nil {
			return err
		}
		plan.Default = append(plan.Default, target)
	}
	for _, mapping := range f.fields {
		name, column, ok := strings.Cut(mapping, "=")
		if !ok || name == "" {
			return fmt.Errorf("%w: --field %q must be name=column", sqlsafe.ErrInvalidArgument, mapping)
		}
		target, err := request.ParseColumnTarget(column)
		if err != nil {
			return err
		}
		name = strings.ToLower(name)
		plan.Fields[name] = append(plan.Fields[name], target)
	}

	builder, err := go_search.NewPredicateBuilder(cfg)
	if err != nil {
		return err
	}
	frag, err := builder.BuildTextSearch(join, text, plan, opts)
	if err != nil {
		return err
	}
	writeFragment(out, frag)
	return nil
}

func writeFragment(out io.Writer, frag *response.Fragment) {
	if frag == nil {
		fmt.Fprintln(out, "-- nothing to search for")
		return
	}
	fmt.Fprintln(out, frag.SQL())
	for _, arg := range frag.Params.NamedArgs() {
		fmt.Fprintf(out, "-- @%s = %q\n", arg.Name, fmt.Sprint(arg.Value))
	}
}

func newQuoteCmd() *cobra.Command {
	var lenient bool
	cmd := &cobra.Command{
		Use:   "quote <name>",
		Short: "Quote an identifier with brackets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lenient {
				fmt.Fprintln(cmd.OutOrStdout(), sqlsafe.QuoteIdentifierLenient(args[0]))
				return nil
			}
			quoted, err := sqlsafe.QuoteIdentifier(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), quoted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Truncate long names instead of failing")
	return cmd
}

func openService(cfg *config.Config, dbPath string) (*go_search.SearchService, error) {
	conn, err := db.InitDB(dbPath, cfg.LogSQL)
	if err != nil {
		return nil, err
	}
	return go_search.NewSearchService(conn, cfg)
}

func newVisitorsCmd(cfg *config.Config) *cobra.Command {
	var (
		dbPath      string
		buildingIDs []uint
		onSite      bool
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "visitors [text]...",
		Short: "Search visitors in the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cfg, dbPath)
			if err != nil {
				return err
			}
			req := request.GetVisitorsRequest{BuildingIDs: buildingIDs}
			if len(args) > 0 {
				text := strings.Join(args, " ")
				req.Search = &text
			}
			if onSite {
				checkedOut := false
				req.CheckedOut = &checkedOut
			}
			if limit > 0 {
				req.PaginationConditions.Limit = &limit
			}

			visitors, total, err := svc.Visitors.GetVisitors(req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range visitors {
				fmt.Fprintf(out, "%-16s %-12s %-12s %-24s %s\n", v.BadgeCode, v.FirstName, v.LastName, deref(v.Company), v.Status)
			}
			fmt.Fprintf(out, "%d of %d visitors\n", len(visitors), total)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dbPath, "db", "d", cfg.DBPath, "Database path")
	cmd.Flags().UintSliceVarP(&buildingIDs, "building", "b", nil, "Only these building IDs")
	cmd.Flags().BoolVar(&onSite, "on-site", false, "Only visitors who have not checked out")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum rows to print")
	return cmd
}

func newCheckoutStaleCmd(cfg *config.Config) *cobra.Command {
	var (
		dbPath    string
		olderThan time.Duration
	)
	cmd := &cobra.Command{
		Use:   "checkout-stale",
		Short: "Check out visitors who checked in before a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cfg, dbPath)
			if err != nil {
				return err
			}
			n, err := svc.Worker.CheckOutStaleVisitors(time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked out %d visitors\n", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dbPath, "db", "d", cfg.DBPath, "Database path")
	cmd.Flags().DurationVar(&olderThan, "older-than", 12*time.Hour, "Check out visits longer than this")
	return cmd
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
