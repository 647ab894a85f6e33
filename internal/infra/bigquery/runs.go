package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// RunRow is one pipeline run in the bookkeeping table.
type RunRow struct {
	RunID        string                 `bigquery:"run_id"`
	StartedTS    time.Time              `bigquery:"started_ts"`
	FinishedTS   bigquery.NullTimestamp `bigquery:"finished_ts"`
	Status       string                 `bigquery:"status"`
	ErrorMessage string                 `bigquery:"error_message"`
	RowsLoaded   bigquery.NullInt64     `bigquery:"rows_loaded"`
}

// Run statuses.
const (
	StatusRunning = "RUNNING"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// maxErrorMessageLen caps what gets stored for a failed run.
const maxErrorMessageLen = 2000

// StartRun inserts a run row with status RUNNING and returns its ID. An
// empty runID gets a fresh UUID.
func (c *Client) StartRun(ctx context.Context, runID string) (string, error) {
	if runID == "" {
		runID = uuid.NewString()
	}

	q := c.bq.Query(fmt.Sprintf(`
		INSERT `+"`%s.%s.%s`"+` (run_id, started_ts, status)
		VALUES (@run_id, @started_ts, @status)
	`, c.projectID, c.datasetID, runsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
		{Name: "started_ts", Value: time.Now()},
		{Name: "status", Value: StatusRunning},
	}

	if err := c.runQuery(ctx, q); err != nil {
		return "", fmt.Errorf("StartRun: %w", err)
	}
	return runID, nil
}

// MarkRunSucceeded updates a run row to SUCCESS with the loaded row count.
func (c *Client) MarkRunSucceeded(ctx context.Context, runID string, rowsLoaded int) error {
	q := c.bq.Query(fmt.Sprintf(`
		UPDATE `+"`%s.%s.%s`"+`
		SET status = @status,
		    finished_ts = @finished_ts,
		    rows_loaded = @rows_loaded,
		    error_message = ""
		WHERE run_id = @run_id
	`, c.projectID, c.datasetID, runsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: StatusSuccess},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "rows_loaded", Value: int64(rowsLoaded)},
		{Name: "run_id", Value: runID},
	}

	if err := c.runQuery(ctx, q); err != nil {
		return fmt.Errorf("MarkRunSucceeded: %w", err)
	}
	return nil
}

// MarkRunFailed updates a run row to FAILED, keeping a truncated error
// message. Bookkeeping failures are swallowed so they never mask the
// original pipeline error.
func (c *Client) MarkRunFailed(ctx context.Context, runID string, runErr error) {
	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
		if len(errMsg) > maxErrorMessageLen {
			errMsg = errMsg[:maxErrorMessageLen]
		}
	}

	q := c.bq.Query(fmt.Sprintf(`
		UPDATE `+"`%s.%s.%s`"+`
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE run_id = @run_id
	`, c.projectID, c.datasetID, runsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: StatusFailed},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "error_message", Value: errMsg},
		{Name: "run_id", Value: runID},
	}

	_ = c.runQuery(ctx, q)
}

// ListRuns returns recent runs, newest first.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]*RunRow, error) {
	q := c.bq.Query(fmt.Sprintf(`
		SELECT run_id, started_ts, finished_ts, status, error_message, rows_loaded
		FROM `+"`%s.%s.%s`"+`
		ORDER BY started_ts DESC
		LIMIT @limit
	`, c.projectID, c.datasetID, runsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "limit", Value: int64(limit)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListRuns: reading query: %w", err)
	}

	var runs []*RunRow
	for {
		var row RunRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListRuns: iterating: %w", err)
		}
		runs = append(runs, &row)
	}
	return runs, nil
}

// runQuery runs a DML query to completion and surfaces the job error.
func (c *Client) runQuery(ctx context.Context, q *bigquery.Query) error {
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}
