package statuschecker

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// TestStatus_Variants verifies the tagged-variant accessors for both cases.
func TestStatus_Variants(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		s := HTTPStatus(404)

		if !s.OK() {
			t.Error("expected OK for an HTTP response")
		}
		if code, ok := s.Code(); !ok || code != 404 {
			t.Errorf("expected (404, true), got (%d, %v)", code, ok)
		}
		if _, ok := s.Failure(); ok {
			t.Error("expected no failure for an HTTP response")
		}
		if s.String() != "404" {
			t.Errorf("expected %q, got %q", "404", s.String())
		}
	})

	t.Run("failure", func(t *testing.T) {
		s := Failed(FailureTimeout)

		if s.OK() {
			t.Error("expected not OK for a failure")
		}
		if _, ok := s.Code(); ok {
			t.Error("expected no code for a failure")
		}
		if failure, ok := s.Failure(); !ok || failure != FailureTimeout {
			t.Errorf("expected (timeout, true), got (%s, %v)", failure, ok)
		}
		if s.String() != "timeout" {
			t.Errorf("expected %q, got %q", "timeout", s.String())
		}
	})
}

// TestStatus_MarshalJSON verifies the flattening rule: numbers for HTTP
// codes, strings for failure classifications.
func TestStatus_MarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"success", HTTPStatus(200), "200"},
		{"server error code", HTTPStatus(503), "503"},
		{"timeout", Failed(FailureTimeout), `"timeout"`},
		{"dns", Failed(FailureDNS), `"dns_error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.status.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON failed: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, data)
			}
		})
	}
}

// TestReport_WriteJSON verifies the serialized record shape: stable field
// order and presence regardless of success or failure.
func TestReport_WriteJSON(t *testing.T) {
	checkedAt := time.Unix(1700000000, 0)

	report := &Report{
		BatchID: "test-batch",
		Results: []Result{
			{
				URL:          "https://ok.test",
				Status:       HTTPStatus(200),
				ResponseTime: 50 * time.Millisecond,
				CheckedAt:    checkedAt,
				Attempts:     1,
			},
			{
				URL:          "https://down.test",
				Status:       Failed(FailureTimeout),
				ResponseTime: time.Second,
				CheckedAt:    checkedAt,
				Attempts:     2,
			},
		},
	}

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	want := `[
  {
    "url": "https://ok.test",
    "status": 200,
    "response_time_ms": 50,
    "timestamp": 1700000000
  },
  {
    "url": "https://down.test",
    "status": "timeout",
    "response_time_ms": 1000,
    "timestamp": 1700000000
  }
]
`
	if got := buf.String(); got != want {
		t.Errorf("unexpected report output:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// TestReport_WriteJSON_Empty verifies that an empty report serializes to an
// empty array rather than null.
func TestReport_WriteJSON_Empty(t *testing.T) {
	report := &Report{BatchID: "empty", Results: []Result{}}

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("expected empty array, got %s", got)
	}
}

// TestReport_WriteJSON_SubMillisecond verifies that response times are
// truncated to whole milliseconds.
func TestReport_WriteJSON_SubMillisecond(t *testing.T) {
	report := &Report{
		Results: []Result{{
			URL:          "https://fast.test",
			Status:       HTTPStatus(204),
			ResponseTime: 2500 * time.Microsecond,
			CheckedAt:    time.Unix(1700000000, 0),
			Attempts:     1,
		}},
	}

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"response_time_ms": 2`) {
		t.Errorf("expected whole-millisecond truncation, got:\n%s", buf.String())
	}
}
