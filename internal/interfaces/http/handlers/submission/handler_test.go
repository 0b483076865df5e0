package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bid-labs/ticketgen/internal/application/submission/dto"
	"github.com/bid-labs/ticketgen/internal/application/submission/usecases"
	"github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/testutil"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

type mockProcessUC struct {
	calls   int
	name    string
	tag     string
	content []byte
	result  *dto.SubmissionResultDTO
	err     error
}

func (m *mockProcessUC) Execute(_ context.Context, cmd usecases.ProcessSubmissionCommand) (*dto.SubmissionResultDTO, error) {
	m.calls++
	m.name = cmd.File.Name
	m.tag = cmd.ServiceTag
	m.content, _ = io.ReadAll(cmd.File.Reader)
	return m.result, m.err
}

type mockPreviewUC struct {
	tag    string
	result *dto.PreviewDTO
	err    error
}

func (m *mockPreviewUC) Execute(_ context.Context, cmd usecases.PreviewSubmissionCommand) (*dto.PreviewDTO, error) {
	m.tag = cmd.ServiceTag
	return m.result, m.err
}

type mockListUC struct {
	got    usecases.ListSubmissionsQuery
	result *usecases.ListSubmissionsResult
}

func (m *mockListUC) Execute(_ context.Context, q usecases.ListSubmissionsQuery) (*usecases.ListSubmissionsResult, error) {
	m.got = q
	return m.result, nil
}

type mockGetUC struct {
	result *dto.SnapshotDTO
	err    error
}

func (m *mockGetUC) Execute(_ context.Context, _ uint) (*dto.SnapshotDTO, error) {
	return m.result, m.err
}

type testDeps struct {
	process *mockProcessUC
	preview *mockPreviewUC
	list    *mockListUC
	get     *mockGetUC
}

func newTestDeps() *testDeps {
	return &testDeps{
		process: &mockProcessUC{},
		preview: &mockPreviewUC{},
		list:    &mockListUC{},
		get:     &mockGetUC{},
	}
}

func (d *testDeps) handler(maxBytes int64) *Handler {
	return NewHandler(d.process, d.preview, d.list, d.get, maxBytes, testutil.NewMockLogger())
}

func parse(t *testing.T, body []byte) testutil.APIResponse {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestHandler_Submit_Success(t *testing.T) {
	deps := newTestDeps()
	deps.process.result = &dto.SubmissionResultDTO{SubmissionID: 1, TicketID: 9, TicketCode: "BID-EST-EST-3-TEL-OTR-001", Consecutive: 1}

	c, w := testutil.NewMultipartContext(http.MethodPost, "/api/v1/submissions",
		"file", "solicitud.xlsx", []byte("workbook"), map[string]string{"service_type": "TEL"})

	deps.handler(10 << 20).Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := parse(t, w.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "BID-EST-EST-3-TEL-OTR-001")
	assert.Equal(t, "solicitud.xlsx", deps.process.name)
	assert.Equal(t, "TEL", deps.process.tag)
	assert.Equal(t, []byte("workbook"), deps.process.content)
}

func TestHandler_Submit_MissingFile(t *testing.T) {
	deps := newTestDeps()
	c, w := testutil.NewMultipartContext(http.MethodPost, "/api/v1/submissions",
		"file", "", nil, map[string]string{"service_type": "TEL"})

	deps.handler(10 << 20).Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file is required", parse(t, w.Body.Bytes()).Error.Message)
	assert.Zero(t, deps.process.calls)
}

func TestHandler_Submit_TooLarge(t *testing.T) {
	deps := newTestDeps()
	c, w := testutil.NewMultipartContext(http.MethodPost, "/api/v1/submissions",
		"file", "big.xlsx", bytes.Repeat([]byte("x"), 8<<10), nil)

	deps.handler(1 << 10).Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, parse(t, w.Body.Bytes()).Error.Message, "upload exceeds")
	assert.Zero(t, deps.process.calls)
}

func TestHandler_Submit_Rejected(t *testing.T) {
	deps := newTestDeps()
	deps.process.err = errors.NewUnprocessableError("missing mandatory fields").WithItems(errors.ErrorItem{
		Code:    usecases.CodeMissingField,
		Field:   "client_id",
		Source:  "C5",
		Message: "Client ID is required",
	})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/api/v1/submissions",
		"file", "solicitud.xlsx", []byte("workbook"), nil)

	deps.handler(0).Submit(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := parse(t, w.Body.Bytes())
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Items, 1)
	assert.Equal(t, "C5", resp.Error.Items[0].Source)
	assert.Equal(t, usecases.CodeMissingField, resp.Error.Items[0].Code)
}

func TestHandler_Preview(t *testing.T) {
	deps := newTestDeps()
	deps.preview.result = &dto.PreviewDTO{
		Fields:   map[string]string{"client_id": "EST"},
		NextCode: "BID-EST-EST-3-TEL-OTR-004",
	}

	c, w := testutil.NewMultipartContext(http.MethodPost, "/api/v1/submissions/preview",
		"file", "solicitud.xlsm", []byte("workbook"), map[string]string{"service_type": "TEL"})

	deps.handler(10 << 20).Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "TEL", deps.preview.tag)
	assert.Contains(t, w.Body.String(), "BID-EST-EST-3-TEL-OTR-004")
}

func TestHandler_List(t *testing.T) {
	deps := newTestDeps()
	deps.list.result = &usecases.ListSubmissionsResult{
		Submissions: []*dto.SnapshotDTO{{ID: 1, TicketCode: "BID-EST-EST-3-TEL-OTR-001"}},
		Total:       1,
		Page:        1,
		PageSize:    20,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/submissions", nil)
	testutil.SetQueryParams(c, map[string]string{"q": " EST ", "page_size": "5"})

	deps.handler(0).List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "EST", deps.list.got.Search)
	assert.Equal(t, 5, deps.list.got.PageSize)
}

func TestHandler_Get_NotFound(t *testing.T) {
	deps := newTestDeps()
	deps.get.err = errors.NewNotFoundError("submission not found")

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/submissions/4", nil)
	testutil.SetURLParam(c, "id", "4")

	deps.handler(0).Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
