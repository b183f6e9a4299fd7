package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formweave/aster/pkg/events"
	"github.com/formweave/aster/pkg/kafka"
	"github.com/formweave/aster/pkg/models"
	mappingroutes "github.com/formweave/aster/pkg/routes/mapping"
)

var validate = validator.New()

func bindJSON(t *testing.T, body any, target any) error {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBuffer(data))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return c.Bind(target)
}

func TestCreateMappingRequestShape(t *testing.T) {
	t.Run("FullPayloadBindsAndValidates", func(t *testing.T) {
		body := map[string]any{
			"page_url":   "https://careers.example.com/apply",
			"scanned_at": "2026-05-02T11:00:00Z",
			"profile": map[string]any{
				"personal": map[string]any{"firstName": "Ada"},
			},
			"scanned_forms": []map[string]any{
				{
					"id": "form-1",
					"fields": []map[string]any{
						{"id": "f1", "input_type": "text", "label": "First Name"},
					},
				},
			},
		}

		var req mappingroutes.CreateMappingRequest
		require.NoError(t, bindJSON(t, body, &req))
		require.NoError(t, validate.Struct(req))

		assert.Equal(t, "https://careers.example.com/apply", req.PageURL)
		assert.Equal(t, time.Date(2026, 5, 2, 11, 0, 0, 0, time.UTC), req.ScannedAt)
		require.Len(t, req.ScannedForms, 1)
		require.Len(t, req.ScannedForms[0].Fields, 1)
		assert.Equal(t, "First Name", req.ScannedForms[0].Fields[0].Label)
	})

	t.Run("MissingPageURLFailsValidation", func(t *testing.T) {
		var req mappingroutes.CreateMappingRequest
		require.NoError(t, bindJSON(t, map[string]any{"profile": map[string]any{}}, &req))
		assert.Error(t, validate.Struct(req))
	})

	t.Run("MissingProfileStillBinds", func(t *testing.T) {
		// Absent profile or forms must reach the orchestrator, which flags
		// the report instead of the API rejecting the request.
		var req mappingroutes.CreateMappingRequest
		require.NoError(t, bindJSON(t, map[string]any{"page_url": "https://x.example.com"}, &req))
		require.NoError(t, validate.Struct(req))
		assert.Nil(t, req.Profile)
		assert.Nil(t, req.ScannedForms)
	})
}

func TestReviewMappingRequestShape(t *testing.T) {
	t.Run("ApprovedIsValid", func(t *testing.T) {
		req := mappingroutes.ReviewMappingRequest{Status: models.ReportStatusApproved}
		assert.NoError(t, validate.Struct(req))
	})

	t.Run("RejectedIsValid", func(t *testing.T) {
		req := mappingroutes.ReviewMappingRequest{Status: models.ReportStatusRejected}
		assert.NoError(t, validate.Struct(req))
	})

	t.Run("UnknownStatusFails", func(t *testing.T) {
		req := mappingroutes.ReviewMappingRequest{Status: "maybe"}
		assert.Error(t, validate.Struct(req))
	})

	t.Run("EmptyStatusFails", func(t *testing.T) {
		req := mappingroutes.ReviewMappingRequest{}
		assert.Error(t, validate.Struct(req))
	})
}

func TestScanMessageParsing(t *testing.T) {
	t.Run("ValidPayload", func(t *testing.T) {
		payload := map[string]any{
			"page_url":   "https://careers.example.com/apply",
			"scanned_at": "2026-05-02T11:00:00Z",
			"profile":    map[string]any{"personal": map[string]any{"firstName": "Ada"}},
			"scanned_forms": []map[string]any{
				{"id": "form-1", "fields": []map[string]any{}},
			},
		}
		data, err := json.Marshal(payload)
		require.NoError(t, err)

		msg := &kafka.IncomingMessage{Value: data}
		require.NoError(t, msg.ParseScanMessage())
		require.NotNil(t, msg.Scan)
		assert.Equal(t, "https://careers.example.com/apply", msg.Scan.PageURL)
		require.Len(t, msg.Scan.Forms, 1)
	})

	t.Run("GarbagePayload", func(t *testing.T) {
		msg := &kafka.IncomingMessage{Value: []byte("not json")}
		assert.Error(t, msg.ParseScanMessage())
		assert.Nil(t, msg.Scan)
	})
}

func TestMappingCompletedEventShape(t *testing.T) {
	report := &models.MappingReport{
		ID:                  "report-1",
		PageURL:             "https://careers.example.com/apply",
		Matches:             []models.FieldMatch{{FieldID: "f1", ProfilePath: models.PathFirstName, Value: "Ada", Confidence: 1.0}},
		AggregateConfidence: 1.0,
	}

	event := events.MappingCompletedEvent{
		BaseEvent:           events.NewBaseEvent(events.EventTypeMappingCompleted),
		ReportID:            report.ID,
		PageURL:             report.PageURL,
		Matches:             report.Matches,
		AggregateConfidence: report.AggregateConfidence,
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, string(events.EventTypeMappingCompleted), decoded["event_type"])
	assert.Equal(t, events.SchemaVersion, decoded["schema_version"])
	assert.NotEmpty(t, decoded["correlation_id"])
	assert.Equal(t, "report-1", decoded["report_id"])
}
