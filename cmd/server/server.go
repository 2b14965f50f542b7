package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/character-builder/internal/clients/external"
	"github.com/KirkDiggler/character-builder/internal/config"
	"github.com/KirkDiggler/character-builder/internal/engine"
	"github.com/KirkDiggler/character-builder/internal/engine/rpgtoolkit"
	v1 "github.com/KirkDiggler/character-builder/internal/handlers/builder/v1"
	"github.com/KirkDiggler/character-builder/internal/orchestrators/character"
	diceorch "github.com/KirkDiggler/character-builder/internal/orchestrators/dice"
	"github.com/KirkDiggler/character-builder/internal/pkg/clock"
	"github.com/KirkDiggler/character-builder/internal/pkg/idgen"
	"github.com/KirkDiggler/character-builder/internal/pkg/logging"
	redisclient "github.com/KirkDiggler/character-builder/internal/redis"
	draftrepo "github.com/KirkDiggler/character-builder/internal/repositories/character_draft"
	dicesession "github.com/KirkDiggler/character-builder/internal/repositories/dice_session"
	"github.com/KirkDiggler/character-builder/internal/rules/equipment"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

var (
	configPath string
	envFile    string
	grpcPort   int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the character builder gRPC server backed by Redis.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	serverCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading config")
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port, overrides server.port")
}

// handlers are the registered gRPC services
type handlers struct {
	builder *v1.Handler
	dice    *v1.DiceHandler
}

func runServer(cmd *cobra.Command, _ []string) error {
	config.LoadDotEnv(envFile)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if grpcPort != 0 {
		cfg.Server.Port = grpcPort
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, &redisclient.Options{
		PoolSize: cfg.Redis.PoolSize,
		UseTLS:   cfg.Redis.UseTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
	}

	h, err := buildHandlers(cfg, redisClient, logger)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	interceptorLogger := logging.InterceptorLogger(logger.Named("grpc"))
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1.RegisterCharacterBuilderServer(srv, h.builder)
	v1.RegisterDiceServer(srv, h.dice)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1.CharacterBuilderServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1.DiceServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("gRPC server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			logger.Info("server stopped gracefully")
		}
		return nil
	case err := <-errChan:
		return err
	}
}

// buildHandlers wires repositories, rules, engine and orchestrators
func buildHandlers(cfg *config.Config, redisClient redisclient.Client, logger *zap.Logger) (*handlers, error) {
	clk := clock.New()

	drafts, err := draftrepo.NewRedisRepository(&draftrepo.Config{Client: redisClient, Clock: clk})
	if err != nil {
		return nil, fmt.Errorf("failed to create draft repository: %w", err)
	}
	sessions, err := dicesession.NewRedisRepository(&dicesession.Config{Client: redisClient, Clock: clk})
	if err != nil {
		return nil, fmt.Errorf("failed to create dice session repository: %w", err)
	}

	rules, err := ruleset.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	compendium, err := buildCompendium(cfg.Compendium, rules, logger)
	if err != nil {
		return nil, err
	}

	ledger, err := equipment.NewLedger(&equipment.Config{Rules: rules})
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment ledger: %w", err)
	}

	bus := events.NewBus()
	subscribeAudit(bus, logger.Named("events"))

	eng, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		EventBus:       bus,
		DiceRoller:     dice.DefaultRoller,
		Rules:          rules,
		ManualMinScore: cfg.Rules.ManualMinScore,
		Logger:         logger.Named("engine"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	diceService, err := diceorch.NewOrchestrator(&diceorch.Config{
		DiceSessionRepo: sessions,
		IDGenerator:     idgen.NewUUID("roll"),
		Engine:          eng,
		DiceRoller:      dice.DefaultRoller,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dice orchestrator: %w", err)
	}

	characterService, err := character.New(&character.Config{
		CharacterDraftRepo: drafts,
		DiceService:        diceService,
		Engine:             eng,
		Rules:              rules,
		Ledger:             ledger,
		ExternalClient:     compendium,
		IDGenerator:        idgen.NewUUID("draft"),
		Clock:              clk,
		Logger:             logger,
		DraftTTL:           cfg.Drafts.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create character orchestrator: %w", err)
	}

	builderHandler, err := v1.NewHandler(&v1.HandlerConfig{CharacterService: characterService})
	if err != nil {
		return nil, fmt.Errorf("failed to create builder handler: %w", err)
	}
	diceHandler, err := v1.NewDiceHandler(&v1.DiceHandlerConfig{DiceService: diceService})
	if err != nil {
		return nil, fmt.Errorf("failed to create dice handler: %w", err)
	}

	return &handlers{builder: builderHandler, dice: diceHandler}, nil
}

// buildCompendium returns the embedded catalog, or the dnd5e API with the
// catalog as fallback
func buildCompendium(cfg config.CompendiumConfig, rules *ruleset.Rules, logger *zap.Logger) (external.Client, error) {
	static, err := external.NewStatic(rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create static compendium: %w", err)
	}
	if cfg.Source != config.CompendiumAPI {
		return static, nil
	}

	client, err := external.New(&external.Config{
		BaseURL:     cfg.BaseURL,
		HTTPTimeout: cfg.HTTPTimeout,
		CacheTTL:    cfg.CacheTTL,
		Fallback:    static,
		Logger:      logger.Named("compendium"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create compendium client: %w", err)
	}
	return client, nil
}

// subscribeAudit logs advancement events after the engine has applied them
func subscribeAudit(bus *events.Bus, logger *zap.Logger) {
	bus.SubscribeFunc(engine.EventLevelUp, 1000, func(_ context.Context, e events.Event) error {
		fields := []zap.Field{zap.String("event", engine.EventLevelUp)}
		if draft, ok := rpgtoolkit.ExtractDraft(e.Source()); ok {
			fields = append(fields, zap.String("draft_id", draft.ID))
		}
		if level, ok := rpgtoolkit.GetIntContext(e, engine.ContextLevel); ok {
			fields = append(fields, zap.Int("level", level))
		}
		if hp, ok := rpgtoolkit.GetIntContext(e, engine.ContextHitPointsGained); ok {
			fields = append(fields, zap.Int("hit_points_gained", hp))
		}
		logger.Info("character leveled", fields...)
		return nil
	})
	bus.SubscribeFunc(engine.EventClassAdded, 1000, func(_ context.Context, e events.Event) error {
		if draft, ok := rpgtoolkit.ExtractDraft(e.Source()); ok {
			logger.Info("class added", zap.String("draft_id", draft.ID))
		}
		return nil
	})
}
