// Package handler は機能に属さないプラットフォーム共通のHTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// Health は死活監視用の /healthz エンドポイントです。
// 監視側が古い結果を掴まないよう、レスポンスはキャッシュさせません。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	// GETはボディ付き200、HEAD/OPTIONSはボディなしで応答する
	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
