package router

import (
	authhandler "kalakraft_backend/internal/feature/auth/transport/handler"
	cataloghandler "kalakraft_backend/internal/feature/catalog/transport/handler"
	imagescanhandler "kalakraft_backend/internal/feature/imagescan/transport/handler"
	mediahandler "kalakraft_backend/internal/feature/media/transport/handler"
	uploadhandler "kalakraft_backend/internal/feature/uploads/transport/handler"
	jwtmw "kalakraft_backend/internal/platform/jwt"
	"kalakraft_backend/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

// NewRouter はストアフロントAPIのルーティングを構築します。
// imagescanはCloudクライアントが初期化できなかった場合nilになり、
// その場合スキャン系ルートは登録されません。
func NewRouter(auth *authhandler.AuthHandler, catalog *cataloghandler.CatalogHandler,
	upload *uploadhandler.UploadHandler, video *mediahandler.VideoHandler,
	imagescan *imagescanhandler.ImagescanHandler, uploadsDir string) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// ログイン（セッションクッキー発行）
	r.POST("/api/auth/login", auth.Login)
	// ログアウト（全レガシークッキーの失効）
	r.POST("/api/auth/logout", auth.Logout)
	// 商品カタログ
	r.GET("/api/products", catalog.List)
	r.GET("/api/products/:slug", catalog.Get)
	// 紹介動画（Rangeリクエスト対応）
	r.GET("/api/video", video.Stream)
	// アップロード済みファイルの公開配信
	r.Static("/uploads", uploadsDir)

	// 認証必須のルート
	authed := r.Group("/api")
	authed.Use(jwtmw.AuthRequired())
	{
		authed.POST("/auth/request-password-change", auth.RequestPasswordChange)
		authed.POST("/auth/confirm-password-change", auth.ConfirmPasswordChange)
	}

	// 管理者専用のルート
	admin := r.Group("/api")
	admin.Use(jwtmw.AuthRequired(), jwtmw.AdminRequired())
	{
		admin.POST("/uploads", upload.Upload)
		admin.POST("/admin/products", catalog.Create)
		admin.PUT("/admin/products/:id", catalog.Update)
		if imagescan != nil {
			admin.POST("/admin/images/scan", imagescan.Scan)
			admin.POST("/admin/images/describe", imagescan.Describe)
		}
	}

	return r
}
