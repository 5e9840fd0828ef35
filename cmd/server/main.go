package main

import (
	"time"

	"github.com/labstack/echo/v4"

	"olivia/config"
	"olivia/database"
	"olivia/pkg/ai"
	"olivia/pkg/climate"
	"olivia/pkg/logging"
	"olivia/pkg/validation"
	"olivia/router"

	// Auth + Health
	authCtrlImp "olivia/pkg/auth/controllerImp"
	healthCtrlImp "olivia/pkg/health/controllerImp"

	// Wardrobe
	wardrobeCtrlImp "olivia/pkg/wardrobe/controllerImp"
	wardrobeRepoImp "olivia/pkg/wardrobe/repositoryImp"
	wardrobeSvcImp "olivia/pkg/wardrobe/serviceImp"

	// Outfits + trending
	outfitCtrlImp "olivia/pkg/outfit/controllerImp"
	outfitRepoImp "olivia/pkg/outfit/repositoryImp"
	trendingCtrlImp "olivia/pkg/trending/controllerImp"
	trendingRepoImp "olivia/pkg/trending/repositoryImp"
	trendingSvcImp "olivia/pkg/trending/serviceImp"

	// Planner
	plannerCtrlImp "olivia/pkg/planner/controllerImp"
	plannerSvcImp "olivia/pkg/planner/serviceImp"

	// Chat
	chatCtrlImp "olivia/pkg/chat/controllerImp"
	chatRepoImp "olivia/pkg/chat/repositoryImp"
	chatSvcImp "olivia/pkg/chat/serviceImp"
)

func main() {
	// 1) Config + logging
	cfg, envErr := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if envErr != nil {
		logging.Warn().Err(envErr).Msg("no .env, using process environment")
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logging.Warn().Err(err).Str("tz", cfg.Timezone).Msg("unknown timezone, using UTC")
		loc = time.UTC
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Climate normals; builtin table when the files are missing
	normals, err := climate.LoadFromFiles(cfg.ClimateCSV, cfg.ClimateXLSX)
	if err != nil {
		logging.Warn().Err(err).Msg("climate normals")
	}
	logging.Info().Int("cities", normals.Loaded()).Msg("climate normals ready")

	// 4) LLM behind a breaker
	llm := ai.WithBreaker(ai.New(ai.Config{
		Provider:     cfg.LLMProvider,
		Endpoint:     cfg.LLMEndpoint,
		APIKey:       cfg.LLMAPIKey,
		Model:        cfg.LLMModel,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
	}), ai.DefaultBreakerConfig())
	if !ai.Configured(llm) {
		logging.Warn().Msg("no LLM provider configured, /chat will fail")
	}

	// 5) Repos
	clothes := wardrobeRepoImp.New(db)
	outfits := outfitRepoImp.New(db)
	usage := trendingRepoImp.New(db)
	chatUsage := chatRepoImp.New(db)

	// 6) Services
	wardrobeSvc := wardrobeSvcImp.NewWardrobeService(clothes, wardrobeSvcImp.NewPageFetcher(cfg.WardrobeDomains, nil))
	trendingSvc := trendingSvcImp.NewTrendingService(usage, outfits, nil)
	plannerSvc := plannerSvcImp.NewPlannerService(clothes, outfits, normals, plannerSvcImp.WithLocation(loc))
	chatSvc := chatSvcImp.NewChatService(llm, chatUsage, cfg.ChatDailyLimit, nil)

	// 7) Echo + routes
	e := echo.New()
	e.Validator = validation.New()
	router.New(e, router.Handlers{
		Auth:     authCtrlImp.NewAuthController(cfg.JWTSecret, chatUsage, nil),
		Health:   healthCtrlImp.NewHealthCtrl(db, normals, llm),
		Trending: trendingCtrlImp.New(trendingSvc),
		Wardrobe: wardrobeCtrlImp.New(wardrobeSvc),
		Outfit:   outfitCtrlImp.New(outfits, trendingSvc, nil),
		Planner:  plannerCtrlImp.New(plannerSvc),
		Chat:     chatCtrlImp.New(chatSvc),
	}, router.Options{
		JWTSecret:      cfg.JWTSecret,
		EnableDevLogin: cfg.EnableDevLogin,
		CORSOrigins:    cfg.CORSAllowOrigins,
	})
	if cfg.JWTSecret == "" && !cfg.EnableDevLogin {
		logging.Warn().Msg("JWT_SECRET unset and dev login off: every user route answers 401")
	}

	// 8) Start
	logging.Info().Str("port", cfg.Port).Str("llm", llm.Name()).Msg("listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}
