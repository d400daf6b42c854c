package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/locvowork/employee_pairs/internal/domain"
	"github.com/locvowork/employee_pairs/internal/logger"
	"github.com/locvowork/employee_pairs/internal/report"
	"github.com/locvowork/employee_pairs/internal/service"
	"github.com/locvowork/employee_pairs/internal/service/serviceutils"
	"github.com/locvowork/employee_pairs/internal/source"
)

const (
	uploadField = "file"
	// WrongFormatMessage is shown when the upload is not a .txt file.
	WrongFormatMessage = `The uploaded file is in a wrong format. Please upload a ".txt" file.`
)

var errFileTooLarge = errors.New("uploaded file is too large")

type MatchHandler struct {
	svc       *service.MatchService
	exporter  *report.Exporter
	maxUpload int64
	validate  *validator.Validate
}

func NewMatchHandler(svc *service.MatchService, exporter *report.Exporter, maxUpload int64) *MatchHandler {
	return &MatchHandler{
		svc:       svc,
		exporter:  exporter,
		maxUpload: maxUpload,
		validate:  validator.New(),
	}
}

// MatchHandler computes pair totals for an uploaded assignment file.
func (h *MatchHandler) MatchHandler(c echo.Context) error {
	var page PageQuery
	if err := h.bindQuery(c, &page); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid paging parameters", err)
	}

	lines, status, err := h.readUpload(c)
	if err != nil {
		return serviceutils.ResponseError(c, status, uploadMessage(status), err)
	}

	result, err := h.svc.Compute(c.Request().Context(), lines)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to compute matches", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Matches computed successfully", toResponse(result, page))
}

// ExportHandler computes pair totals for an uploaded file and returns them as xlsx.
func (h *MatchHandler) ExportHandler(c echo.Context) error {
	lines, status, err := h.readUpload(c)
	if err != nil {
		return serviceutils.ResponseError(c, status, uploadMessage(status), err)
	}

	ctx := c.Request().Context()
	result, err := h.svc.Compute(ctx, lines)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to compute matches", err)
	}

	data, err := h.exporter.ToBytes(service.Rows(result.Matches))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate report", err)
	}

	logger.InfoLog(ctx, "Exported %d matches for run %s", len(result.Matches), result.RunID)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="matches_%s.xlsx"`, result.RunID))
	c.Response().Header().Set("Content-Length", strconv.Itoa(len(data)))
	return c.Blob(http.StatusOK, report.ContentType, data)
}

// StoredMatchesHandler computes pair totals over assignments kept in the database.
func (h *MatchHandler) StoredMatchesHandler(c echo.Context) error {
	var q AssignmentQuery
	if err := h.bindQuery(c, &q); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid query parameters", err)
	}

	result, err := h.svc.ComputeFromRepository(c.Request().Context(), domain.AssignmentFilter{ProjectID: q.ProjectID})
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to compute stored matches", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Matches computed successfully", toResponse(result, q.PageQuery))
}

func (h *MatchHandler) HealthHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "ok", nil)
}

func (h *MatchHandler) bindQuery(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}

// readUpload returns the lines of the uploaded file, or the status code to
// answer with when the upload is unusable.
func (h *MatchHandler) readUpload(c echo.Context) ([]string, int, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		if isTooLarge(err) {
			return nil, http.StatusRequestEntityTooLarge, errFileTooLarge
		}
		return nil, http.StatusBadRequest, fmt.Errorf("missing %q form field: %w", uploadField, err)
	}
	if err := source.CheckExtension(fh.Filename); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: %d bytes", errFileTooLarge, fh.Size)
	}

	lines, err := readMultipart(fh)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return lines, http.StatusOK, nil
}

// isTooLarge reports whether reading the body stopped at a size limit, either
// http.MaxBytesReader or echo's BodyLimit middleware.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	var he *echo.HTTPError
	return errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge
}

func readMultipart(fh *multipart.FileHeader) ([]string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()
	return source.ReadLines(f)
}

func uploadMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return WrongFormatMessage
	case http.StatusRequestEntityTooLarge:
		return "The uploaded file is too large"
	default:
		return "Failed to read uploaded file"
	}
}

func toResponse(result *domain.MatchResult, page PageQuery) MatchResponse {
	rows := service.Rows(result.Matches)
	return MatchResponse{
		RunID:         result.RunID,
		StartedAt:     result.StartedAt,
		CompletedAt:   result.CompletedAt,
		DurationMs:    result.DurationMs,
		LinesRead:     result.LinesRead,
		RecordsParsed: result.RecordsParsed,
		Issues:        result.Issues,
		Rows:          service.Page(rows, page.Limit, page.Offset),
		Total:         len(rows),
	}
}
