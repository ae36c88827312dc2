package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spacesedan/sentiscope/internal/analysis"
	"github.com/spacesedan/sentiscope/internal/dataset"
	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/presentation"
	"github.com/spacesedan/sentiscope/internal/session"
)

// httpError maps domain errors onto status codes. Anything unrecognized is a
// failed computation.
func httpError(err error) *echo.HTTPError {
	var notReady *session.NotReadyError
	switch {
	case errors.As(err, &notReady):
		return echo.NewHTTPError(http.StatusConflict, notReady.Reason)
	case errors.Is(err, analysis.ErrUnknownTechnique),
		errors.Is(err, export.ErrNoSummary),
		errors.Is(err, presentation.ErrNothingToPlot):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, analysis.ErrInvalidParams),
		errors.Is(err, dataset.ErrUnknownColumn),
		errors.Is(err, session.ErrNoDataset):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, analysis.ErrModelUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
}
