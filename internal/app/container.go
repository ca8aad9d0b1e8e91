package app

import (
	"context"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/seeder"
	"talent-match/internal/domain/matching"
	"talent-match/internal/infrastructure/cache"
	applog "talent-match/internal/logger"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   *jwt.HMACService

	Skills          *usecase.Skill
	Matching        *usecase.Matching
	Recommendations *usecase.Recommendations
}

type containerOptions struct {
	realtime bool
	seeders  []seeder.Seeder
}

type ContainerOption func(*containerOptions)

// WithRealtime creates the websocket hub and routes generation events to it.
func WithRealtime() ContainerOption {
	return func(o *containerOptions) { o.realtime = true }
}

// WithSeeders overrides the seeders run when DB_RUN_SEEDERS is set.
func WithSeeders(s []seeder.Seeder) ContainerOption {
	return func(o *containerOptions) { o.seeders = s }
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...ContainerOption) (*Container, error) {
	logger = applog.OrNop(logger)
	o := containerOptions{seeders: seeder.Defaults()}
	for _, opt := range opts {
		opt(&o)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger.Named("postgres"))
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	if cfg.Database.RunMigrations {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir, Logger: logger.Named("migration")}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	if cfg.Database.RunSeeders {
		if err := (seeder.Runner{Seeders: o.seeders, Logger: logger.Named("seeder")}).Run(ctx, db); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)

	c.Skills = usecase.NewSkillUsecase(repository.NewPostgresSkillRepository(db))

	engine, err := c.newEngine(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	candidates := repository.NewPostgresCandidateRepository(db)
	jobs := repository.NewPostgresJobRepository(db)

	deps := usecase.RecommendationDeps{
		Candidates:      candidates,
		Jobs:            jobs,
		Applications:    repository.NewPostgresApplicationRepository(db),
		Recommendations: repository.NewPostgresRecommendationRepository(db),
		Engine:          engine,
		Locker:          usecase.NewLeaseLocker(c.Cache, cfg.Matching.LeaseTTL, logger),
		Cache:           c.Cache,
		Workers:         cfg.Matching.Workers,
		Logger:          logger,
	}
	if o.realtime {
		c.Hub = ws.NewHub(logger)
		deps.Notifier = c.Hub
	}

	c.Recommendations = usecase.NewRecommendationUsecase(deps)
	c.Matching = usecase.NewMatchingUsecase(candidates, jobs, engine, logger)

	return c, nil
}

func (c *Container) newEngine(ctx context.Context) (*matching.Engine, error) {
	if !c.Config.Matching.SynonymExpansion {
		return matching.NewEngine(), nil
	}
	norm, err := c.Skills.SynonymNormalizer(ctx)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("skill synonym expansion enabled")
	return matching.NewEngine(matching.WithSkillNormalizer(norm)), nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
