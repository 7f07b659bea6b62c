package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"parkcareers/internal/app"
	"parkcareers/internal/assistant"
	"parkcareers/internal/config"
	apphttp "parkcareers/internal/http"
	"parkcareers/internal/http/handlers"
	"parkcareers/internal/http/metrics"
	httpmw "parkcareers/internal/http/middleware"
	"parkcareers/internal/http/response"
	"parkcareers/internal/integration/ats"
	"parkcareers/internal/integration/captcha"
	"parkcareers/internal/observability"
	"parkcareers/internal/wizard"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()

	upstreamClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	atsClient := ats.NewClient(cfg.ATSBaseURL, upstreamClient)
	captchaVerifier := captcha.NewVerifier(cfg.CaptchaVerifyURL, cfg.CaptchaSecret, upstreamClient)

	rules, err := assistant.LoadRules(cfg.AssistantRulesPath)
	if err != nil {
		log.Fatal(err)
	}

	sessions := wizard.NewStore(cfg.SessionTTL)
	wizardService := app.NewWizardService(sessions)
	submissionService := app.NewSubmissionService(sessions, atsClient, captchaVerifier, logger)
	trackingService := app.NewTrackingService(atsClient)
	assistantService := app.NewAssistantService(rules)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		limiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		WizardHandler:    handlers.NewWizardHandler(wizardService, submissionService, limiter, collector, cfg.MaxResumeBytes),
		TrackingHandler:  handlers.NewTrackingHandler(trackingService, limiter, collector),
		AssistantHandler: handlers.NewAssistantHandler(assistantService),
		MetricsHandler:   handlers.NewMetricsHandler(collector),
		Metrics:          collector,
		Logger:           logger,
		RequestTimeout:   cfg.RequestTimeout,
		MaxBodyBytes:     cfg.MaxResumeBytes + 2<<20,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("careers gateway started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
