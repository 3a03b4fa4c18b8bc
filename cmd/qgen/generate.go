package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/qgen/internal/config"
	"github.com/kalambet/qgen/internal/generator"
	"github.com/kalambet/qgen/internal/logging"
	"github.com/kalambet/qgen/internal/questions"
	"github.com/kalambet/qgen/internal/taxonomy"
)

// quickExample is one of the canned inputs offered by --example.
type quickExample struct {
	Role   string
	Skills string
	Level  string
}

var quickExamples = []quickExample{
	{"Machine Learning Engineer", "Python, TensorFlow, PyTorch, Scikit-learn", "Senior"},
	{"DevOps Engineer", "AWS, Docker, Kubernetes, Jenkins, Terraform", "Mid-Level"},
	{"Frontend Developer", "React, TypeScript, CSS, Redux", "Entry/Junior"},
	{"Cybersecurity Analyst", "SIEM, Splunk, IDS/IPS, Threat Hunting", "Mid-Level"},
}

type generateOptions struct {
	role    string
	skills  string
	level   string
	mode    string
	example int
	remote  bool
}

// resolve applies --example. Explicit --role/--skills/--level still win.
func (o generateOptions) resolve(cmd *cobra.Command) (generateOptions, error) {
	if o.example == 0 {
		return o, nil
	}
	if o.example < 1 || o.example > len(quickExamples) {
		return o, fmt.Errorf("--example must be between 1 and %d", len(quickExamples))
	}
	ex := quickExamples[o.example-1]
	if cmd == nil || !cmd.Flags().Changed("role") {
		o.role = ex.Role
	}
	if cmd == nil || !cmd.Flags().Changed("skills") {
		o.skills = ex.Skills
	}
	if cmd == nil || !cmd.Flags().Changed("level") {
		o.level = ex.Level
	}
	return o, nil
}

var genOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a set of interview questions",
	Example: `  qgen generate --role "Backend Developer" --skills "Go, PostgreSQL" --level Senior
  qgen generate --example 2 --mode fallback`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := genOpts.resolve(cmd)
		if err != nil {
			return err
		}
		return runGenerate(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

var (
	followupOpts generateOptions
	followupType string
)

var followupCmd = &cobra.Command{
	Use:   "followup",
	Short: "Generate three follow-up questions of one type",
	Example: `  qgen followup --type scenario --role "Data Scientist" --skills "Python, SQL"
  qgen followup --type leadership --level Lead/Principal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFollowup(cmd.Context(), cmd.OutOrStdout(), followupOpts, questions.QuestionType(followupType))
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the known job roles and their categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		printRoles(cmd.OutOrStdout())
		return nil
	},
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the seniority levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		printLevels(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genOpts.role, "role", "", "job role, e.g. \"Software Engineer\"")
	f.StringVar(&genOpts.skills, "skills", "", "comma-separated skills")
	f.StringVar(&genOpts.level, "level", string(taxonomy.DefaultLevel), "experience level")
	f.StringVar(&genOpts.mode, "mode", string(generator.ModeAI), "generation mode: ai or fallback")
	f.IntVar(&genOpts.example, "example", 0, fmt.Sprintf("use quick example 1-%d", len(quickExamples)))
	f.BoolVar(&genOpts.remote, "remote", false, "ask the running qgen server instead of generating locally")

	ff := followupCmd.Flags()
	ff.StringVar(&followupType, "type", string(questions.TypeBehavioral), "question type: "+joinTypes())
	ff.StringVar(&followupOpts.role, "role", "", "job role")
	ff.StringVar(&followupOpts.skills, "skills", "", "comma-separated skills")
	ff.StringVar(&followupOpts.level, "level", string(taxonomy.DefaultLevel), "experience level")
	ff.StringVar(&followupOpts.mode, "mode", string(generator.ModeFallback), "generation mode: ai or fallback")
	ff.BoolVar(&followupOpts.remote, "remote", false, "ask the running qgen server instead of generating locally")
}

func joinTypes() string {
	var names []string
	for _, qt := range questions.QuestionTypes() {
		names = append(names, string(qt))
	}
	return strings.Join(names, ", ")
}

// localService builds a generation service from the on-disk config. Logs go
// nowhere so they don't interleave with the questions.
var localService = func() (*generator.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return newService(cfg, nil, logging.Discard()), nil
}

func runGenerate(ctx context.Context, w io.Writer, opts generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	req := generator.Request{
		Role:   opts.role,
		Skills: opts.skills,
		Level:  opts.level,
		Mode:   generator.Mode(opts.mode),
	}

	var res generator.Result
	if opts.remote {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := c.post(ctx, "/v1/questions", req)
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, &res); err != nil {
			return err
		}
	} else {
		svc, err := localService()
		if err != nil {
			return err
		}
		res = svc.Generate(ctx, req)
	}

	if res.Source == generator.SourceRejected {
		printWarning("%s", res.Text)
		return nil
	}
	fmt.Fprintln(w, res.Text)
	if res.Source == generator.SourceFallback && generator.Mode(opts.mode) != generator.ModeFallback {
		printStatus("Source", "question bank")
	}
	return nil
}

func runFollowup(ctx context.Context, w io.Writer, opts generateOptions, qt questions.QuestionType) error {
	if ctx == nil {
		ctx = context.Background()
	}
	req := generator.FollowupRequest{
		Role:   opts.role,
		Skills: opts.skills,
		Level:  opts.level,
		Type:   qt,
		Mode:   generator.Mode(opts.mode),
	}

	var res generator.FollowupResult
	if opts.remote {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := c.post(ctx, "/v1/followup", req)
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, &res); err != nil {
			return err
		}
	} else {
		svc, err := localService()
		if err != nil {
			return err
		}
		res = svc.Followup(ctx, req)
	}

	if res.Source == generator.SourceUnsupported {
		printWarning("%s", res.Text)
		return nil
	}
	fmt.Fprintln(w, res.Text)
	return nil
}

func printRoles(w io.Writer) {
	for _, r := range taxonomy.Roles() {
		fmt.Fprintf(w, "%-34s %-18s %s\n", r.Label, r.Category, colorize(styleDim, taxonomy.DisplayNameOf(r.Category)))
	}
}

func printLevels(w io.Writer) {
	for _, l := range taxonomy.Levels() {
		p := taxonomy.ProfileOf(string(l))
		fmt.Fprintf(w, "%-16s %-14s %s\n", l, colorize(styleDim, p.Experience), strings.Join(p.Focus, ", "))
	}
}
