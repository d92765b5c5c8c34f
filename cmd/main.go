package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/Leganyst/myhaircut/internal/advice"
	"github.com/Leganyst/myhaircut/internal/config"
	"github.com/Leganyst/myhaircut/internal/db"
	"github.com/Leganyst/myhaircut/internal/journal"
	"github.com/Leganyst/myhaircut/internal/logging"
	"github.com/Leganyst/myhaircut/internal/marketplace"
	"github.com/Leganyst/myhaircut/internal/model"
	"github.com/Leganyst/myhaircut/internal/persistence"
	"github.com/Leganyst/myhaircut/internal/report"
	"github.com/Leganyst/myhaircut/internal/repository"
	"github.com/Leganyst/myhaircut/internal/service"
)

func main() {
	// 1. Конфиг из .env и окружения.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 2. SQL нужен всегда: там журнал событий, а при STORE_BACKEND=sql и снимок состояния.
	gormDB, err := db.NewGormDB(cfg.DB)
	if err != nil {
		logger.Fatal("init db", zap.Error(err))
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		logger.Fatal("auto migrate", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 3. Хранилище ключ-значение под мостом персистентности.
	var kv repository.KVRepository
	switch cfg.Store.Backend {
	case config.BackendRedis:
		rdb, err := db.NewRedisClient(ctx, cfg.Store)
		if err != nil {
			logger.Fatal("init redis", zap.Error(err))
		}
		defer rdb.Close()
		kv = repository.NewRedisKVRepository(rdb, cfg.Store.RedisPrefix)
	case config.BackendMongo:
		mc, err := db.NewMongoClient(ctx, cfg.Store)
		if err != nil {
			logger.Fatal("init mongo", zap.Error(err))
		}
		defer mc.Disconnect(context.Background()) //nolint:errcheck
		kv = repository.NewMongoKVRepository(mc.Database(cfg.Store.MongoDatabase), cfg.Store.MongoCollection)
	default:
		kv = repository.NewGormKVRepository(gormDB)
	}
	logger.Info("state store selected", zap.String("backend", cfg.Store.Backend))

	// 4. Состояние: сохранённые данные поверх демо-набора.
	bridge := persistence.NewBridge(kv, logger)
	initial, err := bridge.Load(ctx)
	if err != nil {
		logger.Fatal("load state", zap.Error(err))
	}

	var policy marketplace.Policy = marketplace.OpenPolicy{}
	if cfg.AccessPolicy == config.PolicyStrict {
		policy = marketplace.StrictPolicy{}
	}

	events := repository.NewGormEventRepository(gormDB)
	mp := marketplace.New(initial, bridge,
		marketplace.WithLogger(logger),
		marketplace.WithJournal(journal.New(events, logger)),
		marketplace.WithPolicy(policy),
		marketplace.WithCommissionRate(cfg.CommissionRate),
		marketplace.WithAdmin(marketplace.AdminCredentials{
			Emails:       cfg.Admin.Emails,
			Password:     cfg.Admin.Password,
			PasswordHash: cfg.Admin.PasswordHash,
			ID:           cfg.Admin.ID,
			Name:         cfg.Admin.Name,
		}),
	)

	// 5. Советник по стрижкам. Без ключа отвечает заглушкой.
	var gen advice.Generator
	gemini, err := advice.NewGeminiGenerator(ctx, cfg.Advice.APIKey, cfg.Advice.Model)
	if err != nil {
		logger.Warn("advice generator disabled", zap.Error(err))
	} else if gemini != nil {
		gen = gemini
	}
	advisor := advice.NewAdvisor(gen, logger, cfg.Advice.Timeout)

	// 6. Периодический отчёт.
	reporter := report.NewReporter(mp, logger)
	if cfg.ReportCron != "" {
		if err := reporter.Start(cfg.ReportCron); err != nil {
			logger.Fatal("start reporter", zap.Error(err))
		}
	}

	// 7. gRPC-сервер.
	grpcServer := grpc.NewServer()
	service.RegisterMarketplaceServer(grpcServer, service.NewMarketplaceService(mp, advisor, events, logger))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}

	logger.Info("marketplace gRPC server listening", zap.String("addr", cfg.GRPCAddr))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("grpc serve", zap.Error(err))
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down gRPC server...")
	grpcServer.GracefulStop()
	reporter.Stop()
}
