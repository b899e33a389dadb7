package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/app/provider"
	"wallet_gateway/internal/app/service"
	dexclient "wallet_gateway/internal/client"
	"wallet_gateway/internal/config"
	networkdefinition "wallet_gateway/internal/infrastructure/network/definition"
	"wallet_gateway/internal/infrastructure/restapi"
	"wallet_gateway/internal/infrastructure/tokenloader"
	"wallet_gateway/internal/pkg/logger"
	"wallet_gateway/internal/pkg/metrics"
	"wallet_gateway/internal/pkg/utils"
)

const defaultConfigPath = "config/config.yml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := utils.GetEnv("CONFIG_PATH", defaultConfigPath)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", "path", configPath, "error", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Sync()

	logger.Info("Wallet gateway starting", "config", configPath, "port", cfg.Server.Port)
	metrics.MustRegisterMetrics()

	appLogger := logger.NewSlogAdapter()

	tokenProvider := provider.NewTokenProvider(tokenloader.NewTokenLoader(cfg.TokensDir, appLogger), appLogger)
	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg.Networks, tokenProvider)

	var priceSource port.PriceSource
	if cfg.DEXScreener.Enabled {
		priceSource = dexclient.NewDEXScreenerClient(
			cfg.DEXScreener.BaseURL,
			time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
			logger.Zap(),
			cfg.Prices.MaxTokensPerBatchRequest,
		)
		logger.Info("DEX Screener price source enabled", "base_url", cfg.DEXScreener.BaseURL)
	}

	amountService := service.NewAmountService(netDefProvider, appLogger)
	tokenPriceService := service.NewTokenPriceService(netDefProvider, priceSource, appLogger, cfg.Prices)
	walletService := service.NewWalletService(netDefProvider, appLogger, time.Duration(*cfg.Wallet.MockDelayMs)*time.Millisecond)
	portfolioService := service.NewPortfolioService(walletService, tokenPriceService, appLogger)

	if cfg.Prices.RefreshOnStart {
		if err := tokenPriceService.RefreshPrices(ctx); err != nil {
			logger.Warn("Initial price refresh failed, serving mock rates", "error", err)
		}
	}

	handler := restapi.NewHandler(netDefProvider, amountService, tokenPriceService, walletService, portfolioService, appLogger)
	router := restapi.SetupRouter(handler, cfg.CORS.AllowOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server forced to shut down", "error", err)
	}
	logger.Info("Server exited")
}
