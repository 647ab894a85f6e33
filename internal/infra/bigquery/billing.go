// Package bigquery is the warehouse sink: transformed billing tables can be
// appended to a BigQuery dataset alongside the run bookkeeping rows.
package bigquery

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/billing-etl/internal/etl"
	"github.com/dvloznov/billing-etl/internal/table"
)

// Client wraps a BigQuery client with the project and dataset the billing
// tables live in.
type Client struct {
	bq        *bigquery.Client
	projectID string
	datasetID string
}

// Table names inside the billing dataset.
const (
	billingTable = "billing_records"
	runsTable    = "pipeline_runs"
)

// NewClient creates a billing warehouse client. Callers own Close.
func NewClient(ctx context.Context, projectID, datasetID string) (*Client, error) {
	bq, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewClient: bigquery client: %w", err)
	}
	return &Client{bq: bq, projectID: projectID, datasetID: datasetID}, nil
}

// Close releases the underlying BigQuery client.
func (c *Client) Close() error { return c.bq.Close() }

// BillingRow is one transformed billing record in the warehouse schema.
type BillingRow struct {
	RunID         string     `bigquery:"run_id"`
	CustomerID    int64      `bigquery:"customer_id"`
	BillingAmount float64    `bigquery:"billing_amount"`
	TaxAmount     float64    `bigquery:"tax_amount"`
	TotalCharges  float64    `bigquery:"total_charges"`
	LoadDate      civil.Date `bigquery:"load_date"`
	LoadedTS      time.Time  `bigquery:"loaded_ts"`
}

// RowsFromTable converts a transformed Record Table into warehouse rows,
// stamped with the run ID and load date.
func RowsFromTable(t *table.Table, runID string) ([]*BillingRow, error) {
	now := time.Now()
	rows := make([]*BillingRow, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		row := &BillingRow{
			RunID:    runID,
			LoadDate: civil.DateOf(now),
			LoadedTS: now,
		}

		if raw, ok := t.Get(i, "customer_id"); ok {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w: customer_id %q", i+1, etl.ErrValueConversion, raw)
			}
			row.CustomerID = id
		}

		for _, f := range []struct {
			col  string
			dest *float64
		}{
			{etl.ColBillingAmount, &row.BillingAmount},
			{etl.ColTaxAmount, &row.TaxAmount},
			{etl.ColTotalCharges, &row.TotalCharges},
		} {
			raw, ok := t.Get(i, f.col)
			if !ok {
				return nil, fmt.Errorf("row %d: %w: %q", i+1, etl.ErrMissingColumn, f.col)
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w: %s %q", i+1, etl.ErrValueConversion, f.col, raw)
			}
			*f.dest = v
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// InsertBillingRows appends a batch of rows to the billing table. An empty
// batch is a no-op.
func (c *Client) InsertBillingRows(ctx context.Context, rows []*BillingRow) error {
	if len(rows) == 0 {
		return nil
	}
	inserter := c.bq.DatasetInProject(c.projectID, c.datasetID).Table(billingTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertBillingRows: inserting %d rows: %w", len(rows), err)
	}
	return nil
}

// QueryBillingRowsByRun returns all billing rows loaded by the given run,
// ordered by customer.
func (c *Client) QueryBillingRowsByRun(ctx context.Context, runID string) ([]*BillingRow, error) {
	q := c.bq.Query(fmt.Sprintf(`
		SELECT run_id, customer_id, billing_amount, tax_amount, total_charges, load_date, loaded_ts
		FROM `+"`%s.%s.%s`"+`
		WHERE run_id = @run_id
		ORDER BY customer_id
	`, c.projectID, c.datasetID, billingTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryBillingRowsByRun: reading query: %w", err)
	}

	var rows []*BillingRow
	for {
		var row BillingRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryBillingRowsByRun: iterating: %w", err)
		}
		rows = append(rows, &row)
	}
	return rows, nil
}

// Sink implements etl.Sink, wrapping each load in run bookkeeping: a run row
// is started before the insert and marked succeeded or failed after.
type Sink struct {
	Client *Client
	RunID  string
}

func (s Sink) Load(ctx context.Context, t *table.Table) error {
	runID, err := s.Client.StartRun(ctx, s.RunID)
	if err != nil {
		return err
	}

	rows, err := RowsFromTable(t, runID)
	if err != nil {
		s.Client.MarkRunFailed(ctx, runID, err)
		return err
	}
	if err := s.Client.InsertBillingRows(ctx, rows); err != nil {
		s.Client.MarkRunFailed(ctx, runID, err)
		return err
	}
	return s.Client.MarkRunSucceeded(ctx, runID, len(rows))
}
