package server

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/spacesedan/sentiscope/internal/analysis"
	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/models"
)

type UploadResponse struct {
	Identity    string   `json:"identity"`
	Rows        int      `json:"rows"`
	Columns     []string `json:"columns"`
	TextColumns []string `json:"text_columns"`
	Column      string   `json:"column,omitempty"`
	SeenBefore  bool     `json:"seen_before"`
}

type StateResponse struct {
	Dataset bool   `json:"dataset"`
	Rows    int    `json:"rows"`
	Column  string `json:"column,omitempty"`
	Ready   bool   `json:"ready"`
	Reason  string `json:"reason,omitempty"`
	Cached  int    `json:"cached"`
}

type columnRequest struct {
	Column string `json:"column" form:"column" query:"column"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}

func (s *Server) handleUpload(c echo.Context) error {
	if s.maxUpload > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, s.maxUpload)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file: "+err.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer f.Close()

	ds, err := dataset.ReadCSV(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid csv: "+err.Error())
	}

	sess := sessionFrom(c)
	sess.Load(ds)

	resp := UploadResponse{
		Identity:    ds.Identity(),
		Rows:        ds.Len(),
		Columns:     ds.Columns(),
		TextColumns: ds.TextColumns(),
		Column:      sess.Column(),
	}

	if s.registry != nil {
		ctx := c.Request().Context()
		resp.SeenBefore = s.registry.Seen(ctx, ds.Identity())
		if err := s.registry.MarkSeen(ctx, ds.Identity()); err != nil {
			slog.Warn("[Server] Failed to record dataset",
				slog.String("identity", ds.Identity()),
				slog.String("error", err.Error()))
		}
	}

	slog.Info("[Server] Dataset uploaded",
		slog.String("session_id", sess.ID),
		slog.String("file", fh.Filename),
		slog.Int("rows", ds.Len()),
		slog.Int("columns", len(resp.Columns)))

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSelectColumn(c echo.Context) error {
	var req columnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Column == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "column is required")
	}

	if err := sessionFrom(c).SelectColumn(req.Column); err != nil {
		return httpError(err)
	}
	return s.handleState(c)
}

// handleReset drops the caller's session with its dataset and cached results.
func (s *Server) handleReset(c echo.Context) error {
	sess := sessionFrom(c)
	s.store.Delete(sess.ID)

	c.SetCookie(&http.Cookie{
		Name:     SESSION_COOKIE,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	slog.Info("[Server] Session cleared",
		slog.String("session_id", sess.ID))
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleState(c echo.Context) error {
	sess := sessionFrom(c)

	resp := StateResponse{
		Column: sess.Column(),
		Cached: sess.Cache().Len(),
	}
	if ds := sess.Dataset(); ds != nil {
		resp.Dataset = true
		resp.Rows = ds.Len()
	}
	if _, err := sess.Admit(); err != nil {
		resp.Reason = err.Error()
	} else {
		resp.Ready = true
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleTechniques(c echo.Context) error {
	return c.JSON(http.StatusOK, s.dash.Techniques())
}

func (s *Server) handlePage(c echo.Context) error {
	t, p, err := pageInput(c)
	if err != nil {
		return err
	}

	page, err := s.dash.View(c.Request().Context(), sessionFrom(c), t, p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) handleChart(c echo.Context) error {
	t, p, err := pageInput(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.dash.RenderChart(c.Request().Context(), sessionFrom(c), t, p, &buf); err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (s *Server) handleExport(c echo.Context) error {
	t, p, err := pageInput(c)
	if err != nil {
		return err
	}

	name, data, err := s.dash.Export(c.Request().Context(), sessionFrom(c), t, p)
	if err != nil {
		return httpError(err)
	}
	return attachment(c, name, data)
}

func (s *Server) handleExportSummary(c echo.Context) error {
	t, p, err := pageInput(c)
	if err != nil {
		return err
	}

	name, data, err := s.dash.ExportSummary(c.Request().Context(), sessionFrom(c), t, p)
	if err != nil {
		return httpError(err)
	}
	return attachment(c, name, data)
}

func attachment(c echo.Context, name string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, export.MIME_TYPE, data)
}

// pageInput reads the technique path parameter and the optional topics query.
func pageInput(c echo.Context) (models.Technique, models.Params, error) {
	t := models.Technique(c.Param("technique"))

	var p models.Params
	if raw := c.QueryParam("topics"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return "", p, httpError(fmt.Errorf("%w: topics must be an integer", analysis.ErrInvalidParams))
		}
		p.Topics = k
	}
	return t, p, nil
}
