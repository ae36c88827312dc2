package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/analysis"
	"github.com/spacesedan/sentiscope/internal/dashboard"
	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/logging"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/session"
)

func main() {
	in := flag.String("in", "", "input CSV file")
	column := flag.String("column", "", "text column to analyze")
	technique := flag.String("technique", string(models.TechniqueSentiment), "analysis technique")
	topics := flag.Int("topics", 0, "number of topics (topic technique only)")
	out := flag.String("out", "", "output CSV file, defaults to the technique's export name")
	summary := flag.Bool("summary", false, "write the group level table instead of per-row results")
	profilePath := flag.String("profile", os.Getenv("PROFILE_PATH"), "analysis profile YAML")
	flag.Parse()

	logging.InitLogger(logging.ParseLevel(os.Getenv("LOG_LEVEL")))

	if err := run(*in, *column, models.Technique(*technique), *topics, *out, *summary, *profilePath); err != nil {
		slog.Error("[Analyze] Failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(in, column string, t models.Technique, topics int, out string, summary bool, profilePath string) error {
	if in == "" || column == "" {
		return fmt.Errorf("-in and -column are required")
	}

	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	ds, err := dataset.ReadCSV(f)
	if err != nil {
		return err
	}

	sess := session.New("cli")
	sess.Load(ds)
	if err := sess.SelectColumn(column); err != nil {
		return err
	}

	dash := dashboard.New(analysis.NewRegistry(analysis.DefaultAnalyzers(profile)...), profile)
	ctx := context.Background()
	p := models.Params{Topics: topics}

	export := dash.Export
	if summary {
		export = dash.ExportSummary
	}
	name, data, err := export(ctx, sess, t, p)
	if err != nil {
		return err
	}

	if out == "" {
		out = name
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	slog.Info("[Analyze] Wrote results",
		slog.String("technique", string(t)),
		slog.String("file", out),
		slog.Int("rows", ds.Len()))
	return nil
}
