package main

import (
	"context"
	"time"

	"github.com/aarifhsn/nexthire-backend/internal/ai/embeddings"
	"github.com/aarifhsn/nexthire-backend/internal/uploads"
	"github.com/aarifhsn/nexthire-backend/pkg/config"
	"github.com/aarifhsn/nexthire-backend/pkg/fsx"
	"github.com/aarifhsn/nexthire-backend/pkg/fsx/fsxlocal"
	"github.com/aarifhsn/nexthire-backend/pkg/fsx/fsxs3"
	"github.com/aarifhsn/nexthire-backend/pkg/iam/auth"
	"github.com/aarifhsn/nexthire-backend/pkg/logx"
	"github.com/aarifhsn/nexthire-backend/pkg/taskq"
	"github.com/aarifhsn/nexthire-backend/recruitment/account/accountapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/account/accountsrv"
	"github.com/aarifhsn/nexthire-backend/recruitment/application/applicationapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/application/applicationinfra"
	"github.com/aarifhsn/nexthire-backend/recruitment/application/applicationsrv"
	"github.com/aarifhsn/nexthire-backend/recruitment/catalog/catalogapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/catalog/cataloginfra"
	"github.com/aarifhsn/nexthire-backend/recruitment/catalog/catalogsrv"
	"github.com/aarifhsn/nexthire-backend/recruitment/company/companyapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/company/companyinfra"
	"github.com/aarifhsn/nexthire-backend/recruitment/company/companysrv"
	"github.com/aarifhsn/nexthire-backend/recruitment/job/jobapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/job/jobinfra"
	"github.com/aarifhsn/nexthire-backend/recruitment/job/jobmatch"
	"github.com/aarifhsn/nexthire-backend/recruitment/job/jobsrv"
	"github.com/aarifhsn/nexthire-backend/recruitment/user/userapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/user/userinfra"
	"github.com/aarifhsn/nexthire-backend/recruitment/user/usersrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const taskQueueName = "nexthire:tasks"

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Tasks      *taskq.RedisQueue
	Worker     *taskq.Worker
	Uploads    *uploads.Store

	// Services
	TokenService       auth.TokenService
	AccountService     *accountsrv.AccountService
	UserService        *usersrv.UserService
	CompanyService     *companysrv.CompanyService
	JobService         *jobsrv.JobService
	ApplicationService *applicationsrv.ApplicationService
	CatalogService     *catalogsrv.CatalogService

	// API Handlers
	AccountHandlers     *accountapi.Handlers
	UserHandlers        *userapi.Handlers
	CompanyHandlers     *companyapi.Handlers
	JobHandlers         *jobapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
	CatalogHandlers     *catalogapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       0,
	})
	if err := c.Redis.Ping(context.Background()).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. File storage
	switch c.Config.Storage.Driver {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.Storage.AWSBucket, "uploads")
	default:
		local, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.UploadDir)
		if err != nil {
			logx.Fatalf("Failed to prepare upload directory: %v", err)
		}
		c.FileSystem = local
	}

	// 4. Background tasks
	c.Tasks = taskq.NewRedisQueue(c.Redis, taskQueueName)
	c.Worker = taskq.NewWorker(c.Tasks, c.Config.WorkerConcurrency)
	c.Uploads = uploads.NewStore(c.FileSystem, c.Tasks)
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	companyRepo := companyinfra.NewPostgresCompanyRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	catalogSource := cataloginfra.NewCachingSource(c.Redis, cfg.CatalogCacheTTL,
		cataloginfra.NewPostgresCatalogSource(c.DB))

	// --- Auth ---
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		secret = "nexthire-development-secret"
	}
	c.TokenService = auth.NewJWTService(secret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	passwords := auth.NewBcryptPasswordService(cfg.Auth.BcryptCost)

	// --- Matching ---
	var recommender jobmatch.Recommender = jobmatch.NewHeuristicRecommender(jobRepo, cfg.Matching.ScanLimit)
	var embedTasks taskq.Enqueuer
	if cfg.Matching.Recommender == "semantic" {
		embedder := embeddings.NewEmbeddingsGenerator(cfg.Matching.OpenAIAPIKey)
		recommender = jobmatch.NewSemanticRecommender(embedder, jobRepo, recommender, cfg.Matching.ScanLimit)
		indexer := jobmatch.NewIndexer(jobRepo, jobRepo, embedder)
		c.Worker.Handle(jobmatch.TaskEmbedJob, indexer.HandleTask)
		embedTasks = c.Tasks
	}
	c.Worker.Handle(uploads.TaskDeleteAsset, c.Uploads.HandleDeleteTask)

	// --- Domain Services ---
	c.AccountService = accountsrv.NewAccountService(userRepo, companyRepo, passwords, c.TokenService)
	c.UserService = usersrv.NewUserService(userRepo, c.Uploads)
	c.JobService = jobsrv.NewJobService(jobRepo, userRepo, recommender, embedTasks)
	c.ApplicationService = applicationsrv.NewApplicationService(applicationRepo, jobRepo, userRepo)
	c.CompanyService = companysrv.NewCompanyService(
		companyRepo,
		companyRepo,
		c.JobService,
		c.ApplicationService,
		c.Uploads,
	)
	c.CatalogService = catalogsrv.NewCatalogService(catalogSource)

	// --- Handlers ---
	c.AccountHandlers = accountapi.NewHandlers(c.AccountService)
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.CompanyHandlers = companyapi.NewHandlers(c.CompanyService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.CatalogHandlers = catalogapi.NewHandlers(c.CatalogService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewAuthMiddleware(c.TokenService, c.AccountService)
}

// Close releases the connections held by the container
func (c *Container) Close() {
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("Failed to close Redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("Failed to close database: %v", err)
	}
}
