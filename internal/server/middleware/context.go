package middleware

import (
	"github.com/CesarLuchesi/phrasenets/pkg/annotate"
	"github.com/CesarLuchesi/phrasenets/pkg/phrasenet"
	"github.com/CesarLuchesi/phrasenets/pkg/store"

	"github.com/labstack/echo/v4"
)

// App bundles the long-lived collaborators handlers need: the analysis
// pipeline client, the analysis-text store and the configured annotation
// engines.
type App struct {
	Analyzer *phrasenet.Client
	Store    store.AnalysisStore
	Spacy    annotate.Annotator
	Stanza   annotate.Annotator
}

// Annotator returns the engine client for the requested nlp tool, or false
// when the tool is unknown or not configured.
func (a *App) Annotator(tool string) (annotate.Annotator, bool) {
	switch tool {
	case "spacy":
		return a.Spacy, a.Spacy != nil
	case "stanza":
		return a.Stanza, a.Stanza != nil
	}
	return nil, false
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
