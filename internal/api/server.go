package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/remaep/registry_service/config"
	"github.com/remaep/registry_service/infra/queue"
	"github.com/remaep/registry_service/internal/api/rest/handlers"
	"github.com/remaep/registry_service/internal/domain"
	"github.com/remaep/registry_service/internal/helper"
	"github.com/remaep/registry_service/internal/repository"
	"github.com/remaep/registry_service/internal/services"
	cld "github.com/remaep/registry_service/pkg/cloudinary"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260517

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.AdminUser{},
		&domain.Matricula{},
		&domain.Homologacion{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// One in-flight request per DNI, enforced by the database itself.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_homologaciones_dni_en_proceso
		 ON homologaciones (dni)
		 WHERE estado IN ('PENDIENTE', 'EN_REVISION') AND deleted_at IS NULL`,
	).Error; err != nil {
		log.Fatalf("index error: %v", err)
	}

	if err := db.Exec(
		`CREATE OR REPLACE VIEW v_estadisticas AS
		 SELECT COUNT(*) AS total_matriculas,
		        COUNT(*) FILTER (WHERE estado = 'ACTIVO') AS activas
		 FROM matriculas
		 WHERE deleted_at IS NULL`,
	).Error; err != nil {
		log.Fatalf("view error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cloud, err := cld.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cld.NewCloudinaryUploader(cloud)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	matriculaRepo := repository.NewMatriculaRepository(db)
	homologacionRepo := repository.NewHomologacionRepository(db)
	estadisticasRepo := repository.NewEstadisticasRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	seedAdmin(adminRepo, cfg)

	// ---------- Services ----------
	registrySvc := services.NewRegistryService(matriculaRepo, estadisticasRepo, homologacionRepo)
	homologacionSvc := services.NewHomologacionService(homologacionRepo, up, kafkaProducer)
	authSvc := services.NewAuthService(adminRepo, authHelper)

	// ---------- Handlers ----------
	handlers.NewMatriculaHandler(registrySvc).SetupRoutes(app)
	handlers.NewHomologacionHandler(homologacionSvc).SetupRoutes(app)
	handlers.NewAdminHandler(homologacionSvc, registrySvc, authSvc, authHelper).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func seedAdmin(repo repository.AdminRepository, cfg config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	if existing, err := repo.FindByEmail(cfg.AdminEmail); err == nil && existing != nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin hash error: %v", err)
		return
	}

	if err := repo.Create(&domain.AdminUser{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
	}); err != nil {
		log.Printf("seed admin error: %v", err)
	}
}
