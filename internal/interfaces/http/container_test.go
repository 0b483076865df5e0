package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/infrastructure/config"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/seeds"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/testdb"
	"github.com/bid-labs/ticketgen/internal/interfaces/http/middleware"
	sharedConfig "github.com/bid-labs/ticketgen/internal/shared/config"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{AllowedOrigins: []string{"*"}},
		Spreadsheet: sharedConfig.SpreadsheetConfig{
			SheetName:   submission.DefaultSheetName,
			UploadDir:   t.TempDir(),
			MaxUploadMB: 5,
		},
		Ticket:       sharedConfig.TicketConfig{CompanyCode: "BID", MaxAllocationAttempts: 5},
		CatalogCache: sharedConfig.CatalogCacheConfig{TTLSeconds: 30},
		RateLimit:    sharedConfig.RateLimitConfig{UploadsPerMinute: 30},
	}
}

func newTestContainer(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gdb := testdb.New(t)
	_, err := seeds.SeedCatalog(gdb, &seeds.CatalogFile{
		Clients:      []seeds.ClientSeed{{ID: 5, Name: "Telcel", Code: "TEL"}},
		ServiceTypes: []seeds.ServiceTypeSeed{{ID: 3, Name: "Estres", Nomenclature: "EST"}},
		Projects:     []seeds.ProjectSeed{{ID: 12, ClientID: 5, Name: "Otro", Code: "OTR"}},
	})
	require.NoError(t, err)

	c, err := NewContainer(gdb, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)
	c.SetupRoutes()
	return c.Engine()
}

func requestForm(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", submission.DefaultSheetName))
	for ref, v := range map[string]interface{}{
		"C5":  "5",
		"H5":  12,
		"D8":  3,
		"D12": "Ana López",
		"J12": "Luis Pérez",
		"M17": "2.1",
		"D20": "Alta de usuarios",
	} {
		require.NoError(t, f.SetCellValue(submission.DefaultSheetName, ref, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func upload(t *testing.T, engine *gin.Engine, path string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("service_type", "PRU"))
	part, err := mw.CreateFormFile("file", "solicitud.xlsx")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func serve(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestContainer_SubmissionToExport(t *testing.T) {
	engine := newTestContainer(t, testConfig(t))

	w := upload(t, engine, "/api/v1/submissions", requestForm(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "BID-PRU-EST-3-TEL-OTR-001")
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w = serve(engine, http.MethodGet, "/api/v1/tickets/by-code/BID-PRU-EST-3-TEL-OTR-001", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(engine, http.MethodGet, "/api/v1/tickets/next-consecutive?client_id=5&project_id=12&service_type_id=3&service_code=PRU", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"consecutivo":2`)

	w = serve(engine, http.MethodGet, "/api/v1/tickets/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"GENERADO":1`)

	w = serve(engine, http.MethodGet, "/api/v1/exports/tables/ticket.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BID-PRU-EST-3-TEL-OTR-001")

	w = serve(engine, http.MethodGet, "/api/v1/exports/tables/users", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(engine, http.MethodGet, "/api/v1/clients/5/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"OTR"`)
}

func TestContainer_Health(t *testing.T) {
	engine := newTestContainer(t, testConfig(t))

	w := serve(engine, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
	assert.NotContains(t, w.Body.String(), `"redis"`)

	w = serve(engine, http.MethodGet, "/version", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContainer_RedisRateLimitsUploads(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Redis = sharedConfig.RedisConfig{Enabled: true, Host: mr.Host(), Port: port}
	cfg.RateLimit.UploadsPerMinute = 1
	engine := newTestContainer(t, cfg)

	form := requestForm(t)
	require.Equal(t, http.StatusCreated, upload(t, engine, "/api/v1/submissions", form).Code)
	assert.Equal(t, http.StatusTooManyRequests, upload(t, engine, "/api/v1/submissions/preview", form).Code)

	w := serve(engine, http.MethodGet, "/health", nil)
	assert.Contains(t, w.Body.String(), `"redis":"up"`)
}

func TestNewContainer_RedisUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis = sharedConfig.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	_, err := NewContainer(testdb.New(t), cfg, logger.Nop())
	assert.Error(t, err)
}
