package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository"
	"github.com/wadjakorntonsri/visit-tracker/pkg/config"
	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/visit-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/visit-tracker/pkg/logging"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
)

const usage = "expected 'export', 'import' or 'stats' subcommands"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")
	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)
	statsDomain := statsCmd.String("domain", "", "only count this domain")
	statsStart := statsCmd.String("start", "", "start date (YYYY-MM-DD)")
	statsEnd := statsCmd.String("end", "", "end date (YYYY-MM-DD)")
	statsTop := statsCmd.Int("top", services.DefaultTopDomains, "number of top domains")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	repo, err := repository.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer repo.Close()

	ctx := context.Background()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		err = doExport(ctx, repo, os.Stdout)
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		err = doImport(ctx, repo, *importFile)
	case "stats":
		statsCmd.Parse(os.Args[2:])
		filter := domain.BuildFilter(*statsStart, *statsEnd, *statsDomain)
		err = doStats(ctx, services.NewAnalyticsService(repo), filter, *statsTop, os.Stdout)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		logging.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

func doExport(ctx context.Context, repo ports.VisitRepository, out io.Writer) error {
	visits, err := repo.Dump(ctx)
	if err != nil {
		return err
	}
	if visits == nil {
		visits = []domain.Visit{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(visits)
}

func doImport(ctx context.Context, repo ports.VisitRepository, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	var visits []domain.Visit
	if err := json.NewDecoder(file).Decode(&visits); err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}

	imported, skipped := importVisits(ctx, repo, visits)
	logging.Info().Int("imported", imported).Int("skipped", skipped).Msg("import finished")
	return nil
}

// importVisits revalidates every record so an edited dump cannot store rows
// the tracker itself would reject. IDs are reassigned by storage.
func importVisits(ctx context.Context, repo ports.VisitRepository, visits []domain.Visit) (imported, skipped int) {
	for _, v := range visits {
		visit, err := domain.NewVisit(v.IPAddress, v.URL, v.CreatedAt)
		if err != nil {
			logging.Warn().Err(err).Int64("id", v.ID).Msg("skipping invalid visit")
			skipped++
			continue
		}
		if err := repo.AppendVisit(ctx, visit); err != nil {
			logging.Warn().Err(err).Int64("id", v.ID).Msg("failed to import visit")
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped
}

func doStats(ctx context.Context, svc ports.AnalyticsService, filter domain.AnalyticsFilter, top int, out io.Writer) error {
	summary, err := svc.GetSummary(ctx, filter, top)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
