package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"kalakraft_backend/internal/app/di"
	"kalakraft_backend/internal/app/router"
	authadapters "kalakraft_backend/internal/feature/auth/adapters"
	authhandler "kalakraft_backend/internal/feature/auth/transport/handler"
	authusecase "kalakraft_backend/internal/feature/auth/usecase"
	catalogadapters "kalakraft_backend/internal/feature/catalog/adapters"
	cataloghandler "kalakraft_backend/internal/feature/catalog/transport/handler"
	catalogusecase "kalakraft_backend/internal/feature/catalog/usecase"
	mediahandler "kalakraft_backend/internal/feature/media/transport/handler"
	uploadadapters "kalakraft_backend/internal/feature/uploads/adapters"
	uploadhandler "kalakraft_backend/internal/feature/uploads/transport/handler"
	uploadusecase "kalakraft_backend/internal/feature/uploads/usecase"
	"kalakraft_backend/internal/platform/cache"
	infradb "kalakraft_backend/internal/platform/db"
	jwtmw "kalakraft_backend/internal/platform/jwt"
	"kalakraft_backend/internal/platform/mail"
	infraredis "kalakraft_backend/internal/platform/redis"
	"kalakraft_backend/internal/shared/ratelimiter"
)

func main() {
	// セッショントークンの署名鍵は必須。未設定のまま既知のデフォルト鍵へ
	// フォールバックする構成は認めず、起動時に落とす。
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Fatalf("%s is not set. Refusing to start without a signing secret.", jwtmw.EnvKeyJWTSecret)
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache; OTP state is process-local.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	productRepo := catalogadapters.NewProductRepository(db)
	otpRepo := di.NewOTPRepository(rdb)

	// Redisキャッシュでラップ
	cachedProductRepo := cache.NewCachingProductRepository(rdb, 5*time.Minute, productRepo, "products")

	// Mailer（OTP送信、プロバイダー保護のためレート制限付き）
	mailer := mail.NewSMTPMailer(ratelimiter.NewRateLimiter(30, time.Minute))

	// Usecase
	tokens := jwtmw.NewGenerator(secret, jwtmw.SessionTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	resetUC := authusecase.NewResetUsecase(userRepo, otpRepo, mailer)
	catalogUC := catalogusecase.NewCatalogUsecase(cachedProductRepo)
	uploadUC := uploadusecase.NewUploadUsecase(uploadadapters.NewLocalStore(os.Getenv("UPLOAD_DIR")))

	// Handler
	authH := authhandler.NewAuthHandler(authUC, resetUC)
	catalogH := cataloghandler.NewCatalogHandler(catalogUC)
	uploadH := uploadhandler.NewUploadHandler(uploadUC)
	videoH := mediahandler.NewVideoHandler(os.Getenv("VIDEO_PATH"))

	// 画像スキャン（Cloudクライアントが使えない環境ではルートごと無効化）
	imagescanH, cleanup, err := di.NewImagescanHandler(context.Background())
	if err != nil {
		slog.Warn("image scan disabled: cloud clients unavailable", "error", err)
		imagescanH = nil
	} else {
		defer cleanup()
	}

	uploadsDir := os.Getenv("UPLOAD_DIR")
	if uploadsDir == "" {
		uploadsDir = uploadadapters.DefaultUploadDir
	}

	// ルータ生成
	r := router.NewRouter(authH, catalogH, uploadH, videoH, imagescanH, uploadsDir)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
