package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/hashicorp/go-multierror"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	driver "go.mongodb.org/mongo-driver/mongo"

	"ecomload/internal/config"
	"ecomload/internal/domain"
	"ecomload/internal/ingest"
	"ecomload/internal/logging"
	"ecomload/internal/port"
	mongorepo "ecomload/internal/repository/mongo"
	"ecomload/internal/repository/postgres"
	"ecomload/internal/service"
	"ecomload/internal/source"
	s3storage "ecomload/internal/storage/s3"
)

// loadConfig reads configuration and applies command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if c.IsSet("batch-size") {
		cfg.Ingest.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("validation-level") {
		cfg.Ingest.ValidationLevel = c.String("validation-level")
	}
	if c.IsSet("coercion") {
		cfg.Ingest.Coercion = c.String("coercion")
	}
	if c.IsSet("precheck") {
		cfg.Ingest.Precheck = c.Bool("precheck")
	}
	if c.IsSet("data-dir") {
		cfg.Ingest.DataDir = c.String("data-dir")
	}
	if c.IsSet("progress-every") {
		cfg.Ingest.ProgressEvery = c.Int("progress-every")
	}
	return cfg, nil
}

// deps holds the connections a command opens. close releases all of them.
type deps struct {
	cfg     *config.Config
	logger  *log.Logger
	client  *driver.Client
	db      *sqlx.DB
	objects port.ObjectStorage
}

func openDeps(ctx context.Context, c *cli.Context, withLedger bool) (*deps, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, logger: logger}
	logger.Infof("Connecting to MongoDB database %s", cfg.Mongo.Database)
	d.client, err = mongorepo.Connect(ctx, &cfg.Mongo)
	if err != nil {
		return nil, err
	}

	d.objects, err = s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		_ = d.close()
		return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	if withLedger && cfg.Ledger.Enabled {
		d.db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			_ = d.close()
			return nil, fmt.Errorf("failed to connect to ledger database: %w", err)
		}
	}
	return d, nil
}

func (d *deps) runRepo() port.RunRepository {
	if d.db == nil {
		return nil
	}
	return postgres.NewRunRepo(d.db)
}

func (d *deps) close() error {
	var result *multierror.Error
	if d.db != nil {
		result = multierror.Append(result, d.db.Close())
	}
	if d.client != nil {
		result = multierror.Append(result, d.client.Disconnect(context.Background()))
	}
	return result.ErrorOrNil()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func ingestCommand(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()

	d, err := openDeps(ctx, c, true)
	if err != nil {
		return err
	}
	defer func() { _ = d.close() }()

	opts, err := service.LoaderOptions(&d.cfg.Ingest)
	if err != nil {
		return err
	}
	svc := service.NewIngestService(
		mongorepo.NewDocumentStore(d.client, d.cfg.Mongo.Database),
		source.NewOpener(d.objects, d.cfg.Ingest.DataDir),
		d.runRepo(),
		opts,
		d.cfg.Ingest.Sources,
		log.NewEntry(d.logger),
	)
	return runIngest(ctx, svc, c.Args().Slice(), os.Stdout)
}

// runIngest ingests names and prints one summary line per attempted run.
func runIngest(ctx context.Context, svc service.IngestService, names []string, out io.Writer) error {
	summaries, err := svc.Ingest(ctx, names)
	printSummaries(out, summaries)
	return err
}

func printSummaries(out io.Writer, summaries []domain.RunSummary) {
	if len(summaries) == 0 {
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tSTATUS\tROWS\tACCEPTED\tREJECTED\tDROPPED\tJOIN DROPPED\tSECONDS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%.2f\n",
			s.Dataset, s.Status, s.Rows, s.Accepted, s.Rejected, s.Dropped, s.JoinDropped, s.Elapsed().Seconds())
	}
	_ = tw.Flush()
}

func indexesCommand(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()

	d, err := openDeps(ctx, c, false)
	if err != nil {
		return err
	}
	defer func() { _ = d.close() }()

	svc := service.NewIngestService(
		mongorepo.NewDocumentStore(d.client, d.cfg.Mongo.Database),
		source.NewOpener(d.objects, d.cfg.Ingest.DataDir),
		nil,
		ingest.Options{},
		d.cfg.Ingest.Sources,
		log.NewEntry(d.logger),
	)
	return runIndexes(ctx, svc, c.Args().Slice(), os.Stdout)
}

func runIndexes(ctx context.Context, svc service.IngestService, names []string, out io.Writer) error {
	created, err := svc.CreateIndexes(ctx, names)
	collections := make([]string, 0, len(created))
	for coll := range created {
		collections = append(collections, coll)
	}
	sort.Strings(collections)
	for _, coll := range collections {
		for _, idx := range created[coll] {
			fmt.Fprintf(out, "%s\t%s\n", coll, idx)
		}
	}
	return err
}

func reportCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("report requires exactly one report name")
	}

	ctx, cancel := signalContext()
	defer cancel()

	d, err := openDeps(ctx, c, true)
	if err != nil {
		return err
	}
	defer func() { _ = d.close() }()

	svc := service.NewReportService(
		mongorepo.NewReportRepo(d.client, d.cfg.Mongo.Database),
		d.runRepo(),
		d.objects,
	)
	req := reportRequest{
		name:       c.Args().First(),
		collection: c.String("collection"),
		filters:    domain.ReportFilters{Limit: c.Int("limit")},
		out:        c.String("out"),
	}
	return runReport(ctx, svc, req, os.Stdout)
}

type reportRequest struct {
	name       string
	collection string
	filters    domain.ReportFilters
	out        string
}

// runReport exports the report when an output location is set and prints
// it as JSON otherwise.
func runReport(ctx context.Context, svc service.ReportService, req reportRequest, out io.Writer) error {
	if req.name == domain.ReportCollection && req.collection == "" {
		return fmt.Errorf("the collection report requires --collection")
	}

	if req.out != "" {
		written, err := svc.Export(ctx, req.name, req.collection, req.filters, req.out)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written to %s\n", written)
		return nil
	}

	rows, err := svc.Rows(ctx, req.name, req.collection, req.filters)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
