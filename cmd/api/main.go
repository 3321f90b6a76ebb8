package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/juju/clock"

	_ "github.com/jhoicas/Garantias-api/docs"
	"github.com/jhoicas/Garantias-api/internal/application/auth"
	"github.com/jhoicas/Garantias-api/internal/application/documents"
	"github.com/jhoicas/Garantias-api/internal/application/maintenance"
	"github.com/jhoicas/Garantias-api/internal/application/usecase"
	"github.com/jhoicas/Garantias-api/internal/application/warranty"
	domwarranty "github.com/jhoicas/Garantias-api/internal/domain/warranty"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/email"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Garantias-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/receipt"
	infraredis "github.com/jhoicas/Garantias-api/internal/infrastructure/redis"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Garantias-api/internal/interfaces/http"
	"github.com/jhoicas/Garantias-api/pkg/config"
	"github.com/jhoicas/Garantias-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == config.DevJWTSecret {
		log.Warn().Msg("JWT_SECRET no definido: se usa el secreto de desarrollo; defínalo fuera de desarrollo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.RunMigrations {
		if err := postgres.Migrate(pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	clk := clock.WallClock
	userRepo := postgres.NewUserRepository(pool)
	warrantyRepo := postgres.NewWarrantyRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	companyRepo := postgres.NewCompanyConfigRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	files, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("carpeta de uploads")
	}

	// Lista de revocación opcional: sin Redis el logout no invalida el token.
	var denylist auth.TokenDenylist
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		tokens := infraredis.NewTokenDenylist(client)
		defer tokens.Close()
		denylist = tokens
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    time.Duration(cfg.JWT.Expiration) * time.Minute,
		Issuer: cfg.JWT.Issuer,
	}, clk, denylist)
	vocabulary := domwarranty.NewVocabulary(cfg.Warranty.Statuses)
	companyUC := usecase.NewCompanyUseCase(companyRepo, files, vocabulary, clk)
	userUC := usecase.NewUserUseCase(userRepo, clk)

	if created, err := authUC.EnsureAdmin(ctx, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("crear cuenta admin")
	} else if created {
		log.Warn().Msg("cuenta admin creada con la contraseña por defecto; cámbiela")
	}
	if created, err := companyUC.EnsureDefault(ctx, cfg.Bootstrap.CompanyName); err != nil {
		log.Fatal().Err(err).Msg("configuración de empresa")
	} else if created {
		log.Info().Str("empresa", cfg.Bootstrap.CompanyName).Msg("configuración de empresa inicial creada")
	}

	notifier := email.NewSMTPNotifier(cfg.SMTP)
	if !cfg.SMTP.Enabled() {
		log.Info().Msg("SMTP no configurado: no se enviarán correos")
	}
	warrantyUC := warranty.NewUseCase(warranty.Deps{
		Warranties: warrantyRepo,
		Comments:   commentRepo,
		Users:      userRepo,
		Files:      files,
		Company:    companyUC,
		Notifier:   notifier,
		Vocabulary: vocabulary,
		Clock:      clk,
		Log:        log,
	})

	htmlRenderer, err := receipt.NewHTMLRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("plantilla del recibo")
	}
	documentsUC := documents.NewUseCase(
		warrantyRepo, companyUC, files,
		htmlRenderer, infrapdf.NewMarotoReceiptGenerator(), spreadsheet.NewExcelExporter(),
		clk,
	)

	var resetUC *maintenance.ResetUseCase
	if cfg.App.EnableReset {
		resetUC = maintenance.NewResetUseCase(txRunner, companyRepo, files, log)
		log.Warn().Msg("endpoint de limpieza de datos habilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Garantías API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		CompanyUC:   companyUC,
		WarrantyUC:  warrantyUC,
		DocumentsUC: documentsUC,
		ResetUC:     resetUC,
		Metrics:     metrics.New(),
		Log:         log,
		ServiceName: cfg.App.Name,
		UploadsDir:  files.Dir(),
		UploadsURL:  cfg.Uploads.PublicPrefix,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
