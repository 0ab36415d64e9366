package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "creditos-backoffice/internal/adapter/http"
	mw "creditos-backoffice/internal/adapter/middleware"
	"creditos-backoffice/internal/adapter/repository/mysql"
	"creditos-backoffice/internal/auth"
	"creditos-backoffice/internal/config"
	"creditos-backoffice/internal/domain/uow"
	"creditos-backoffice/internal/infrastructure/cache"
	"creditos-backoffice/internal/infrastructure/db"
	"creditos-backoffice/internal/infrastructure/storage"
	"creditos-backoffice/internal/jobs"
	automationUC "creditos-backoffice/internal/usecase/automation"
	creditUC "creditos-backoffice/internal/usecase/credit"
	"creditos-backoffice/internal/usecase/export"
	newsUC "creditos-backoffice/internal/usecase/news"
	"creditos-backoffice/internal/usecase/permission"
	"creditos-backoffice/internal/usecase/users"
	withdrawalUC "creditos-backoffice/internal/usecase/withdrawal"
	"creditos-backoffice/internal/usecase/workflow"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := mysql.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	files, err := storage.NewMinioStore(ctx, storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MinioPublicURL,
	})
	cancel()
	if err != nil {
		log.Fatalf("minio: %v", err)
	}

	// repositories + unit of work
	creditRepo := mysql.NewCreditRepository(gdb)
	stateRepo := mysql.NewStateRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	withdrawalRepo := mysql.NewWithdrawalRepository(gdb)
	automationRepo := mysql.NewAutomationRepository(gdb)
	newsRepo := mysql.NewNewsRepository(gdb)
	var tx uow.UnitOfWork = mysql.NewGormUoW(gdb)

	// shared services
	perms := permission.NewEvaluator()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	letters := automationUC.NewRedisDeadLetters(rdb)
	dispatcher := automationUC.NewDispatcher(automationRepo, letters, cfg.WebhookMaxAttempt)

	// usecases
	creditsUC := creditUC.NewUsecase(creditRepo, stateRepo, perms, tx, dispatcher)
	workflowUC := workflow.NewUsecase(perms, tx, dispatcher, cfg.WorkflowStrict)
	usersUC := users.NewUsecase(userRepo, perms, tokens, dispatcher)
	withdrawalsUC := withdrawalUC.NewUsecase(withdrawalRepo, perms, tx, dispatcher)
	exportsUC := export.NewUsecase(creditRepo, perms)
	automationsUC := automationUC.NewUsecase(automationRepo, perms, dispatcher)
	newsUsecase := newsUC.NewUsecase(newsRepo, perms)

	// webhook redelivery sweep
	sched, err := jobs.NewScheduler(cfg.WebhookSweepSpec, dispatcher)
	if err != nil {
		log.Fatalf("jobs: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Base:       httpadp.NewHandler(),
		Auth:       httpadp.NewAuthHandler(usersUC),
		Users:      httpadp.NewUserHandler(usersUC),
		Credits:    httpadp.NewCreditHandler(creditsUC, files),
		Workflow:   httpadp.NewWorkflowHandler(workflowUC, stateRepo),
		Withdrawal: httpadp.NewWithdrawalHandler(withdrawalsUC),
		Export:     httpadp.NewExportHandler(exportsUC),
		Automation: httpadp.NewAutomationHandler(automationsUC),
		News:       httpadp.NewNewsHandler(newsUsecase),
		Reference:  httpadp.NewReferenceHandler(),
	},
		mw.JWTAuth(tokens, userRepo),
		mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
