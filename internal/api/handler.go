package api

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/custopulse/config"
	"github.com/guttosm/custopulse/internal/display"
	"github.com/guttosm/custopulse/internal/domain/dto"
	"github.com/guttosm/custopulse/internal/middleware"
	"github.com/guttosm/custopulse/internal/report"
	"github.com/guttosm/custopulse/internal/service"
	"github.com/guttosm/custopulse/internal/upload"
)

const (
	formatJSON = "json"

	// multipart parts above this size spill to temp files
	multipartMemory = 8 << 20

	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// Handler provides HTTP handlers for report generation and run history.
//
// Responsibilities:
//   - Collect the three uploads and the two thresholds from the request
//   - Pick the display (JSON widgets, XLSX or PDF) from the "format" query
//   - Run one rendering pass through the service
//   - Map a halted pass to 422 without any widgets
type Handler struct {
	svc      service.ReportService
	defaults config.ProcessingConfig
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.ReportService): runs rendering passes.
//   - defaults (config.ProcessingConfig): thresholds used when the request omits them,
//     and the request body cap.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.ReportService, defaults config.ProcessingConfig) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

// GenerateReport handles POST /api/v1/report requests.
//
// Form fields (multipart/form-data):
//   - comb, ext, int (file): combined, external-cost and internal-cost files (.csv, .txt, .xlsx).
//   - lim_ef, lim_norm (number, optional): thresholds; defaults come from config.
//
// Query Parameters:
//   - format (string, optional): json (default), xlsx or pdf.
//
// Responses:
//   - 200 OK: widgets as JSON, or the rendered document.
//   - 400 Bad Request: unknown format, non-numeric threshold or malformed form.
//   - 413 Request Entity Too Large: body above UPLOAD_MAX_BYTES.
//   - 422 Unprocessable Entity: no result could be produced; nothing is rendered.
//
// GenerateReport godoc
// @Summary      Generate cost report
// @Description  Processes the combined, external and internal files and renders internal cost, external cost and the efficient records
// @Tags         report
// @Accept       multipart/form-data
// @Produce      json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        comb      formData  file    true   "Combined file (codigo;descricao;indicador)"
// @Param        ext       formData  file    true   "External costs (codigo;custo)"
// @Param        int       formData  file    true   "Internal costs (codigo;custo)"
// @Param        lim_ef    formData  number  false  "Efficiency threshold" example(100)
// @Param        lim_norm  formData  number  false  "Normality threshold" example(200)
// @Param        format    query     string  false  "Output format" Enums(json, xlsx, pdf)
// @Success      200       {object}  dto.ReportResponse  "Success"
// @Failure      400       {object}  dto.ErrorResponse   "Bad Request"
// @Failure      413       {object}  dto.ErrorResponse   "Payload Too Large"
// @Failure      422       {object}  dto.ErrorResponse   "No Result"
// @Router       /api/v1/report [post]
func (h *Handler) GenerateReport(c *gin.Context) {
	// ─── Pick display ─────────────────────────────────────────
	format := strings.ToLower(c.DefaultQuery("format", formatJSON))
	var (
		collector   *display.Collector
		doc         display.Document
		contentType string
		d           report.Display
	)
	if format == formatJSON {
		collector = display.NewCollector()
		d = collector
	} else {
		var err error
		doc, contentType, err = display.NewDocument(format)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid format, expected json, xlsx or pdf", err)
			return
		}
		d = doc
	}

	// ─── Parse form (missing uploads are left to the processor) ──
	if h.defaults.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.defaults.MaxUploadBytes)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.AbortWithError(c, http.StatusRequestEntityTooLarge, "upload too large", err)
			return
		}
		middleware.AbortWithError(c, http.StatusBadRequest, "malformed multipart form", err)
		return
	}

	// ─── Thresholds ───────────────────────────────────────────
	limEf, err := threshold(c, "lim_ef", h.defaults.LimEf)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid lim_ef", err)
		return
	}
	limNorm, err := threshold(c, "lim_norm", h.defaults.LimNorm)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid lim_norm", err)
		return
	}

	in := report.Input{
		Comb:    upload.NewMultipartHandle(formFile(c.Request.MultipartForm, "comb")),
		Ext:     upload.NewMultipartHandle(formFile(c.Request.MultipartForm, "ext")),
		Int:     upload.NewMultipartHandle(formFile(c.Request.MultipartForm, "int")),
		LimEf:   limEf,
		LimNorm: limNorm,
	}

	// ─── Render (single pass) ─────────────────────────────────
	run := h.svc.Generate(c.Request.Context(), middleware.GetRequestID(c), in, d)
	c.Header("X-Run-ID", run.ID)
	if !run.Present {
		middleware.AbortWithError(c, http.StatusUnprocessableEntity, "no result could be produced from the uploads", nil)
		return
	}

	if collector != nil {
		c.JSON(http.StatusOK, dto.ReportResponse{RunID: run.ID, Widgets: collector.Widgets()})
		return
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="relatorio-`+run.ID+`.`+format+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// ListRuns handles GET /api/v1/runs requests.
//
// ListRuns godoc
// @Summary      List recent processing runs
// @Description  Returns audit metadata of the latest rendering passes, newest first
// @Tags         report
// @Produce      json
// @Param        limit  query     int  false  "Max runs (1-100)" example(20)
// @Success      200    {object}  dto.RunsResponse   "Success"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/runs [get]
func (h *Handler) ListRuns(c *gin.Context) {
	limit := defaultRunsLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxRunsLimit {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid limit, expected 1-100", err)
			return
		}
		limit = n
	}

	runs, err := h.svc.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch runs", err)
		return
	}
	c.JSON(http.StatusOK, dto.RunsResponse{Runs: runs})
}

func threshold(c *gin.Context, field string, def float64) (float64, error) {
	s := strings.TrimSpace(c.Request.FormValue(field))
	if s == "" {
		return def, nil
	}
	return upload.ParseNumber(s)
}

func formFile(form *multipart.Form, field string) *multipart.FileHeader {
	if form == nil || len(form.File[field]) == 0 {
		return nil
	}
	return form.File[field][0]
}
