package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/CesarLuchesi/phrasenets/internal/server/middleware"
	"github.com/CesarLuchesi/phrasenets/pkg/annotate"
	"github.com/CesarLuchesi/phrasenets/pkg/extract"
	"github.com/CesarLuchesi/phrasenets/pkg/logger"
	"github.com/CesarLuchesi/phrasenets/pkg/phrasenet"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const defaultMaxNodes = 100

// AnalyzeHandler builds a phrase net from raw text or an uploaded file
// (multipart/form-data)
func AnalyzeHandler(c echo.Context) error {
	type analyzeBody struct {
		TextContent string `form:"text_content"`
		LinkingType string `form:"linking_type" validate:"required,oneof=orthographic syntactic"`
		Pattern     string `form:"pattern"`
		NlpTool     string `form:"nlp_tool" validate:"omitempty,oneof=spacy stanza"`
		MaxNodes    int    `form:"max_nodes" validate:"omitempty,gt=0"`
		HiddenWords string `form:"hidden_words"`
		Lemmatize   bool   `form:"lemmatize"`
	}

	type analyzeResponse struct {
		Message    string            `json:"message"`
		AnalysisID string            `json:"analysis_id,omitempty"`
		Result     *phrasenet.Result `json:"analysis_result,omitempty"`
	}

	data := new(analyzeBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, analyzeResponse{
			Message: "Invalid request body",
		})
	}
	if data.MaxNodes == 0 {
		data.MaxNodes = defaultMaxNodes
	}

	ctx := c.Request().Context()

	text := data.TextContent
	if text == "" {
		upload, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, analyzeResponse{
				Message: "No text or file provided",
			})
		}
		src, err := upload.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, analyzeResponse{
				Message: "Could not open file",
			})
		}
		defer src.Close()
		content, err := io.ReadAll(src)
		if err != nil {
			return c.JSON(http.StatusBadRequest, analyzeResponse{
				Message: "Could not read file",
			})
		}
		text, err = extract.Text(ctx, upload.Filename, content)
		if err != nil {
			logger.Error("Failed to extract text", "file", upload.Filename, "err", err)
			return c.JSON(http.StatusUnprocessableEntity, analyzeResponse{
				Message: "Could not extract text from file",
			})
		}
	}
	text = extract.Sanitize(text)
	if strings.TrimSpace(text) == "" {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "The extracted text is empty",
		})
	}

	hiddenWords := make([]string, 0)
	if data.HiddenWords != "" {
		if err := json.Unmarshal([]byte(data.HiddenWords), &hiddenWords); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, analyzeResponse{
				Message: "hidden_words must be a JSON array of strings",
			})
		}
	}

	app := c.(*middleware.AppContext).App
	var annotator annotate.Annotator
	if data.NlpTool != "" {
		engine, ok := app.Annotator(data.NlpTool)
		if !ok {
			return c.JSON(http.StatusServiceUnavailable, analyzeResponse{
				Message: "The requested nlp tool is not configured",
			})
		}
		annotator = engine
	}

	result, err := app.Analyzer.Analyze(ctx, phrasenet.AnalyzeParams{
		Text:        text,
		Linking:     phrasenet.LinkingType(data.LinkingType),
		Pattern:     data.Pattern,
		Annotator:   annotator,
		MaxNodes:    data.MaxNodes,
		HiddenWords: hiddenWords,
		Lemmatize:   data.Lemmatize,
	})
	if err != nil {
		var configErr *phrasenet.ConfigError
		var inputErr *phrasenet.InputError
		var serviceErr *phrasenet.ServiceError
		switch {
		case errors.As(err, &configErr):
			return c.JSON(http.StatusUnprocessableEntity, analyzeResponse{
				Message: configErr.Error(),
			})
		case errors.As(err, &inputErr):
			return c.JSON(http.StatusBadRequest, analyzeResponse{
				Message: inputErr.Error(),
			})
		case errors.As(err, &serviceErr):
			logger.Error("Annotation service failed", "service", serviceErr.Service, "err", serviceErr.Err)
			return c.JSON(http.StatusBadGateway, analyzeResponse{
				Message: "The annotation service is unavailable",
			})
		default:
			logger.Error("Analysis failed", "err", err)
			return c.JSON(http.StatusInternalServerError, analyzeResponse{
				Message: "Internal server error",
			})
		}
	}

	analysisID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message: "Internal server error",
		})
	}
	if err := app.Store.Put(ctx, analysisID, text); err != nil {
		logger.Error("Failed to store analysis text", "id", analysisID, "err", err)
	}

	return c.JSON(http.StatusOK, analyzeResponse{
		Message:    "Analysis completed successfully",
		AnalysisID: analysisID,
		Result:     result,
	})
}
