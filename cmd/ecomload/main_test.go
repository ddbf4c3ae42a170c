package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"ecomload/internal/config"
	"ecomload/internal/domain"
	"ecomload/mocks"
)

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %s not found", name)
	return nil
}

// captureConfig swaps the command's action for one recording the loaded config.
func captureConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()
	app := newApp()
	var cfg *config.Config
	cmd := findCommand(t, app, args[1])
	cmd.Action = func(c *cli.Context) error {
		var err error
		cfg, err = loadConfig(c)
		return err
	}
	require.NoError(t, app.Run(args))
	require.NotNil(t, cfg)
	return cfg
}

func TestNewApp_Commands(t *testing.T) {
	app := newApp()
	for _, name := range []string{"ingest", "indexes", "report"} {
		assert.NotNil(t, findCommand(t, app, name))
	}
}

func TestLoadConfig_IngestFlagsOverride(t *testing.T) {
	cfg := captureConfig(t, "ecomload", "--log-level", "debug", "ingest",
		"--batch-size", "250",
		"--validation-level", "strict",
		"--coercion", "reject",
		"--precheck",
		"--data-dir", "/data/olist",
		"--progress-every", "1000",
		"customers")

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250, cfg.Ingest.BatchSize)
	assert.Equal(t, "strict", cfg.Ingest.ValidationLevel)
	assert.Equal(t, "reject", cfg.Ingest.Coercion)
	assert.True(t, cfg.Ingest.Precheck)
	assert.Equal(t, "/data/olist", cfg.Ingest.DataDir)
	assert.Equal(t, 1000, cfg.Ingest.ProgressEvery)
}

func TestLoadConfig_UnsetFlagsKeepDefaults(t *testing.T) {
	cfg := captureConfig(t, "ecomload", "ingest")

	assert.Equal(t, 5000, cfg.Ingest.BatchSize)
	assert.Equal(t, "moderate", cfg.Ingest.ValidationLevel)
	assert.False(t, cfg.Ingest.Precheck)
}

func TestReportCommand_RequiresName(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"ecomload", "report"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one report name")
}

func TestRunIngest_PrintsSummaries(t *testing.T) {
	svc := new(mocks.MockIngestService)
	svc.On("Ingest", mock.Anything, []string{"customers"}).Return([]domain.RunSummary{
		{Dataset: "customers", Status: domain.RunStatusPartial, Rows: 10, Accepted: 8, Rejected: 1, Dropped: 1},
	}, nil)

	var out bytes.Buffer
	err := runIngest(context.Background(), svc, []string{"customers"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "DATASET")
	assert.Contains(t, out.String(), "customers")
	assert.Contains(t, out.String(), "partial")
	svc.AssertExpectations(t)
}

func TestRunIngest_ReturnsErrorAfterPrinting(t *testing.T) {
	svc := new(mocks.MockIngestService)
	svc.On("Ingest", mock.Anything, []string(nil)).Return([]domain.RunSummary{
		{Dataset: "customers", Status: domain.RunStatusFailed},
	}, errors.New("ingesting customers: boom"))

	var out bytes.Buffer
	err := runIngest(context.Background(), svc, nil, &out)

	require.Error(t, err)
	assert.Contains(t, out.String(), "failed")
}

func TestRunIndexes_SortedOutput(t *testing.T) {
	svc := new(mocks.MockIngestService)
	svc.On("CreateIndexes", mock.Anything, []string{"all"}).Return(map[string][]string{
		"products":  {"product_category_name_1"},
		"customers": {"customer_unique_id_1", "customer_state_1"},
	}, nil)

	var out bytes.Buffer
	require.NoError(t, runIndexes(context.Background(), svc, []string{"all"}, &out))

	assert.Equal(t,
		"customers\tcustomer_unique_id_1\ncustomers\tcustomer_state_1\nproducts\tproduct_category_name_1\n",
		out.String())
}

func TestRunReport_PrintsJSON(t *testing.T) {
	svc := new(mocks.MockReportService)
	filters := domain.ReportFilters{Limit: 2}
	svc.On("Rows", mock.Anything, domain.ReportStates, "", filters).Return([]domain.StateRevenueRow{
		{State: "SP", Revenue: 100.5, OrderCount: 3},
	}, nil)

	var out bytes.Buffer
	err := runReport(context.Background(), svc, reportRequest{name: domain.ReportStates, filters: filters}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), `"state": "SP"`)
	assert.Contains(t, out.String(), `"order_count": 3`)
}

func TestRunReport_Export(t *testing.T) {
	svc := new(mocks.MockReportService)
	filters := domain.ReportFilters{Limit: 10}
	svc.On("Export", mock.Anything, domain.ReportOrders, "", filters, "s3://reports/top.csv").
		Return("s3://reports/top.csv", nil)

	var out bytes.Buffer
	err := runReport(context.Background(), svc, reportRequest{
		name:    domain.ReportOrders,
		filters: filters,
		out:     "s3://reports/top.csv",
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Report written to s3://reports/top.csv\n", out.String())
	svc.AssertNotCalled(t, "Rows", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunReport_CollectionNeedsName(t *testing.T) {
	svc := new(mocks.MockReportService)

	err := runReport(context.Background(), svc, reportRequest{name: domain.ReportCollection}, &bytes.Buffer{})

	require.Error(t, err)
	svc.AssertExpectations(t)
}
