package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CasinoBlackjack/config"
	"CasinoBlackjack/internal/auth"
	"CasinoBlackjack/internal/game/manager"
	"CasinoBlackjack/internal/game/table"
	"CasinoBlackjack/internal/roster"
	"CasinoBlackjack/internal/storage"
	"CasinoBlackjack/internal/utils"
	"CasinoBlackjack/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.Load("config/config.yaml"); err != nil {
		utils.Print.Fatal("failed to read config", "err", err)
	}
	utils.Init(config.C.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//-------------------------------------------------------
	// 1. 初始化存档（file / memory / redis / postgres）
	//-------------------------------------------------------
	repo, err := roster.Open(ctx, roster.StoreConfig{
		Kind:          config.C.Game.Store,
		SaveFile:      config.C.Game.SaveFile,
		Name:          "server",
		RedisAddr:     config.C.Redis.Addr,
		RedisPassword: config.C.Redis.Password,
		RedisDB:       config.C.Redis.DB,
		PostgresDSN:   config.C.Database.DSN,
	})
	if err != nil {
		utils.Print.Fatal("saved game store init failed", "store", config.C.Game.Store, "err", err)
	}
	defer storage.Close()
	rosterSvc := roster.NewService(repo)

	//-------------------------------------------------------
	// 2. 初始化 Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//-------------------------------------------------------
	// 3. 初始化 Hub（必须最先启动）
	//-------------------------------------------------------
	hub := websocket.NewHub()

	//-------------------------------------------------------
	// 4. 初始化 GameManager，接管 Hub 的玩家消息
	//-------------------------------------------------------
	secret := []byte(config.C.JWT.Secret)
	gameMgr := manager.NewGameManager(hub, rosterSvc, manager.Options{
		Catalog:         table.DefaultCatalog(),
		Secret:          secret,
		TokenTTL:        config.C.JWT.TTL,
		DecisionTimeout: config.C.Game.DecisionTimeout,
		Seed:            config.C.Game.Seed,
		Logger:          utils.Print.WithPrefix("game"),
	})
	hub.OnIncoming = gameMgr.HandlePlayerMessage
	go hub.Run()

	//-------------------------------------------------------
	// 5. 存档与牌桌路由
	//-------------------------------------------------------
	rh := roster.NewHandler(rosterSvc)
	r.GET("/roster", rh.List)
	r.POST("/roster", rh.Create)

	gh := manager.NewHandler(gameMgr)
	r.GET("/tables", gh.Tables)
	r.GET("/game", gh.Status)
	r.POST("/game", gh.Start)

	//-------------------------------------------------------
	// 6. WebSocket 入口（JWT 来自 POST /game）
	//-------------------------------------------------------
	authed := r.Group("/", auth.JwtAuthMiddleware(secret))
	{
		authed.GET("/ws", websocket.ServeWS(hub))
	}

	//-------------------------------------------------------
	// 7. 启动服务器
	//-------------------------------------------------------
	srv := &http.Server{Addr: config.C.Server.Port, Handler: r}
	go func() {
		utils.Print.Info("server running", "addr", config.C.Server.Port, "store", config.C.Game.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Print.Fatal("server failed", "err", err)
		}
	}()

	<-ctx.Done()
	utils.Print.Info("shutting down")

	//-------------------------------------------------------
	// 8. 退出：先存档再关连接
	//-------------------------------------------------------
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := gameMgr.Shutdown(shutdownCtx); err != nil {
		utils.Print.Error("game shutdown", "err", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Print.Error("http shutdown", "err", err)
	}
	hub.Close()
}
