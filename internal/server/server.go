package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/CesarLuchesi/phrasenets/internal/server/middleware"
	"github.com/CesarLuchesi/phrasenets/internal/util"
	"github.com/CesarLuchesi/phrasenets/pkg/annotate"
	"github.com/CesarLuchesi/phrasenets/pkg/annotate/spacy"
	"github.com/CesarLuchesi/phrasenets/pkg/annotate/stanza"
	"github.com/CesarLuchesi/phrasenets/pkg/logger"
	"github.com/CesarLuchesi/phrasenets/pkg/phrasenet"
	badgerstore "github.com/CesarLuchesi/phrasenets/pkg/store/badger"

	"github.com/go-playground/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ttl := time.Duration(util.GetEnvNumeric("ANALYSIS_TEXT_TTL_MIN", 60)) * time.Minute
	analysisStore, err := badgerstore.NewStore(badgerstore.NewStoreParams{
		Dir: util.GetEnv("ANALYSIS_STORE_DIR"),
		TTL: ttl,
	})
	if err != nil {
		logger.Fatal("Failed to open analysis store", "err", err)
	}
	defer analysisStore.Close()

	analyzer, err := phrasenet.NewClient(phrasenet.NewClientParams{
		PoolSize: int(util.GetEnvNumeric("ANNOTATE_POOL_SIZE", 8)),
	})
	if err != nil {
		logger.Fatal("Failed to create analysis client", "err", err)
	}
	defer analyzer.Close()

	nlpParallel := int64(util.GetEnvNumeric("NLP_PARALLEL_REQ", 4))
	var spacyClient annotate.Annotator
	if url := util.GetEnv("SPACY_URL"); url != "" {
		spacyClient, err = spacy.NewAnnotateClient(spacy.NewAnnotateClientParams{
			BaseURL:               url,
			ApiKey:                util.GetEnv("SPACY_API_KEY"),
			Model:                 util.GetEnvString("SPACY_MODEL", "en_core_web_sm"),
			MaxConcurrentRequests: nlpParallel,
		})
		if err != nil {
			logger.Fatal("Failed to create spacy client", "err", err)
		}
	}
	var stanzaClient annotate.Annotator
	if url := util.GetEnv("STANZA_URL"); url != "" {
		stanzaClient, err = stanza.NewAnnotateClient(stanza.NewAnnotateClientParams{
			BaseURL:               url,
			Language:              util.GetEnvString("STANZA_LANG", "en"),
			MaxConcurrentRequests: nlpParallel,
		})
		if err != nil {
			logger.Fatal("Failed to create stanza client", "err", err)
		}
	}

	app := &mid.App{
		Analyzer: analyzer,
		Store:    analysisStore,
		Spacy:    spacyClient,
		Stanza:   stanzaClient,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("50M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
