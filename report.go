package statuschecker

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Result holds the final outcome recorded for one target URL.
//
// Result is immutable after creation. Exactly one Result exists per input
// URL position; when the same URL appears more than once in the input, each
// occurrence produces its own independent Result.
type Result struct {
	// URL is the target URL that was checked.
	URL string

	// Status is the final outcome: an HTTP status code, or the failure
	// classification of the last attempt when every attempt failed.
	Status Status

	// ResponseTime is the elapsed time of the attempt that produced the
	// final status, measured to response-header receipt.
	ResponseTime time.Duration

	// CheckedAt is when the target's attempt sequence completed.
	CheckedAt time.Time

	// Attempts is the number of probe attempts actually made.
	Attempts int
}

// Report is the aggregated outcome of one batch run.
//
// Results are ordered by input position regardless of completion order and
// the slice is never mutated after [Checker.Run] returns. A report for an
// empty input has zero results and is not an error.
type Report struct {
	// BatchID uniquely identifies this run, for log correlation.
	BatchID string

	// Results holds one entry per input URL, in input order.
	Results []Result

	// Started is when the batch began.
	Started time.Time

	// Finished is when the last result was collected.
	Finished time.Time
}

// Len returns the number of results in the report.
func (r *Report) Len() int {
	return len(r.Results)
}

// record is the serialized form of one [Result]. Field order and presence
// are identical for successes and failures; only the status value's JSON
// type differs (number vs string).
type record struct {
	URL            string `json:"url"`
	Status         Status `json:"status"`
	ResponseTimeMS int64  `json:"response_time_ms"`
	Timestamp      int64  `json:"timestamp"`
}

// WriteJSON serializes the report to w as an indented JSON array with one
// record per result: url, status (HTTP code as a number, or the failure
// classification as a string), response_time_ms (whole milliseconds), and
// timestamp (unix seconds of completion).
func (r *Report) WriteJSON(w io.Writer) error {
	records := make([]record, len(r.Results))
	for i, res := range r.Results {
		records[i] = record{
			URL:            res.URL,
			Status:         res.Status,
			ResponseTimeMS: res.ResponseTime.Milliseconds(),
			Timestamp:      res.CheckedAt.Unix(),
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
