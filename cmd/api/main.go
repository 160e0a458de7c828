package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kataras/golog"

	"github.com/Abhishek28042001/PureCheck/internal/chat"
	"github.com/Abhishek28042001/PureCheck/internal/llm"
	"github.com/Abhishek28042001/PureCheck/internal/middleware"
	"github.com/Abhishek28042001/PureCheck/internal/nutrition"
	"github.com/Abhishek28042001/PureCheck/internal/pipeline"
	"github.com/Abhishek28042001/PureCheck/internal/product"
	"github.com/Abhishek28042001/PureCheck/internal/rag"
	"github.com/Abhishek28042001/PureCheck/internal/session"
	"github.com/Abhishek28042001/PureCheck/internal/storage"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	log := golog.New()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		log.SetLevel(level)
	}

	required := []string{
		"AZURE_OPENAI_API_KEY",
		"AZURE_OPENAI_ENDPOINT",
		"PINECONE_API_KEY",
		"PINECONE_HOST",
		"SESSION_SECRET",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	// ───────────────────────── BASELINE ─────────────────────────
	baseline := nutrition.FSSAIBaseline()
	if err := baseline.Validate(); err != nil {
		log.Fatalf("Invalid INR baseline: %v", err)
	}

	// ───────────────────────── MODEL PROVIDER ─────────────────────────
	client, err := llm.NewAzureClient()
	if err != nil {
		log.Fatalf("Azure OpenAI init failed: %v", err)
	}

	retriever, err := rag.NewPineconeRetriever(log)
	if err != nil {
		log.Fatalf("Pinecone init failed: %v", err)
	}

	// ───────────────────────── SESSIONS ─────────────────────────
	var sessions session.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		sessions = session.NewRedisStore(session.RedisOptions{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
	} else {
		log.Warnf("REDIS_ADDR not set, sessions are in-process only")
		sessions = session.NewMemoryStore()
	}

	// ───────────────────────── STORAGE ─────────────────────────
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	saver, err := storage.NewLocalSaver(uploadDir)
	if err != nil {
		log.Fatalf("Upload dir init failed: %v", err)
	}

	var archiver product.Archiver
	if storage.R2Configured() {
		r2, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatalf("R2 init failed: %v", err)
		}
		archiver = r2
	}

	// ───────────────────────── SERVICES ─────────────────────────
	analysisPipeline := pipeline.New(client, baseline, log)
	productService := product.NewService(analysisPipeline, saver, archiver, sessions, log)
	chatService := chat.NewService(client, retriever, log)

	// ───────────────────────── HANDLERS ─────────────────────────
	productHandler := product.NewHandler(productService, log)
	chatHandler := chat.NewHandler(chatService, sessions, log)

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()
	r.MaxMultipartMemory = product.MaxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Session())

	r.LoadHTMLFiles("templates/index.html")
	r.Static("/uploads", uploadDir)

	// ───────────────────────── ROUTES ─────────────────────────
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	r.POST("/upload", productHandler.Upload)
	r.POST("/chat", chatHandler.Chat)
	r.POST("/clear-session", productHandler.ClearSession)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Infof("PureCheck API running at http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
