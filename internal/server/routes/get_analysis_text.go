package routes

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/CesarLuchesi/phrasenets/internal/server/middleware"
	"github.com/CesarLuchesi/phrasenets/pkg/logger"
	"github.com/CesarLuchesi/phrasenets/pkg/store"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetAnalysisTextHandler returns the source text of a previous analysis
func GetAnalysisTextHandler(c echo.Context) error {
	type analysisTextParams struct {
		ID string `param:"id" validate:"required"`
	}

	type analysisTextResponse struct {
		Message string `json:"message,omitempty"`
		Text    string `json:"text,omitempty"`
		Length  int    `json:"length,omitempty"`
	}

	params := new(analysisTextParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, analysisTextResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, analysisTextResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	text, err := app.Store.Get(ctx, params.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, analysisTextResponse{
				Message: "No analysis with this id",
			})
		}
		logger.Error("Failed to load analysis text", "id", params.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, analysisTextResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, analysisTextResponse{
		Text:   text,
		Length: utf8.RuneCountInString(text),
	})
}
