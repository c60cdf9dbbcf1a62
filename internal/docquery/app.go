package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kart-io/docquery/internal/docquery/biz"
	"github.com/kart-io/docquery/internal/docquery/handler"
	"github.com/kart-io/docquery/internal/docquery/router"
	"github.com/kart-io/docquery/internal/docquery/store"
	"github.com/kart-io/docquery/pkg/app"
	"github.com/kart-io/docquery/pkg/blob"
	"github.com/kart-io/docquery/pkg/component/milvus"
	"github.com/kart-io/docquery/pkg/component/postgres"
	"github.com/kart-io/docquery/pkg/component/redis"
	"github.com/kart-io/docquery/pkg/component/storage"
	"github.com/kart-io/docquery/pkg/extract"
	"github.com/kart-io/docquery/pkg/extract/pdf"
	"github.com/kart-io/docquery/pkg/extract/tesseract"
	"github.com/kart-io/docquery/pkg/llm"
	"github.com/kart-io/docquery/pkg/pool"

	// Register LLM providers
	_ "github.com/kart-io/docquery/pkg/llm/ollama"
	_ "github.com/kart-io/docquery/pkg/llm/openai"
)

const (
	appName        = "docquery"
	appDescription = `Document QA Service

A retrieval-augmented question answering service over uploaded documents.

This server provides:
  - Document upload with text extraction (PDF, scanned images via OCR)
  - Chunking and vector indexing with embeddings
  - Question answering grounded in the indexed document chunks`
)

// NewApp creates a new application instance.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(appName),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return Run(opts)
		}),
	)
}

// Run runs the document QA service with the given options.
func Run(opts *Options) error {
	printBanner()

	// 1. 初始化日志
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting docquery service...")

	// 2. 初始化 PostgreSQL 与存储工厂
	pgClient, err := postgres.New(opts.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer pgClient.Close()

	storeFactory, err := store.GetFactory(pgClient)
	if err != nil {
		return fmt.Errorf("failed to initialize store factory: %w", err)
	}
	logger.Info("PostgreSQL initialized")

	// 3. 初始化 Redis（仅当启用答案缓存）
	var redisClient *redis.Client
	if opts.QA.Cache.Enabled {
		redisClient, err = redis.New(opts.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redisClient.Close()
		logger.Info("Redis initialized")
	}

	// 4. 初始化 Milvus 客户端
	milvusClient, err := milvus.New(opts.Milvus)
	if err != nil {
		return fmt.Errorf("failed to initialize milvus: %w", err)
	}
	defer milvusClient.Close(context.Background())
	logger.Info("Milvus client initialized")

	// 5. 初始化 LLM 供应商
	embedder, err := llm.NewEmbeddingProvider(opts.Embedding.Provider, opts.Embedding.ToConfigMap())
	if err != nil {
		return fmt.Errorf("failed to initialize embedding provider: %w", err)
	}
	chat, err := llm.NewChatProvider(opts.Chat.Provider, opts.Chat.ToConfigMap())
	if err != nil {
		return fmt.Errorf("failed to initialize chat provider: %w", err)
	}
	logger.Infow("LLM providers initialized",
		"embedding", opts.Embedding.Provider, "chat", opts.Chat.Provider)

	// 6. 初始化文本提取
	pdfExtractor, err := pdf.NewExtractor(nil)
	if err != nil {
		return fmt.Errorf("failed to initialize pdf extractor: %w", err)
	}
	ocrExtractor := tesseract.NewExtractorWithConfig(&tesseract.Config{
		BaseURL:    opts.Extract.OCRBaseURL,
		Language:   opts.Extract.OCRLanguage,
		Timeout:    opts.Extract.OCRTimeout,
		MaxRetries: opts.Extract.OCRMaxRetries,
	})
	extractors := extract.NewSet(pdfExtractor, ocrExtractor)

	// 7. 初始化文件存储与提取工作池
	blobStore, err := blob.NewFileStore(opts.Ingest.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	extractPool, err := pool.NewPool("extraction", pool.ExtractionPool, pool.ExtractionPoolConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize extraction pool: %w", err)
	}
	defer extractPool.Release()

	// 8. 初始化向量索引
	vectorIndex := store.NewMilvusIndex(milvusClient, embedder, &store.IndexConfig{
		Collection:      opts.Ingest.Collection,
		Dimension:       opts.Ingest.EmbeddingDim,
		EmbedBatchSize:  opts.Ingest.EmbedBatchSize,
		EmbedBatchPause: opts.Ingest.EmbedBatchPause,
	})
	ensureCtx, cancel := context.WithTimeout(context.Background(), opts.Milvus.Timeout)
	err = vectorIndex.EnsureCollection(ensureCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}
	logger.Infow("Vector index initialized", "collection", opts.Ingest.Collection)

	// 9. 初始化 Biz 层
	var redisRaw *goredis.Client
	if redisClient != nil {
		redisRaw = redisClient.Client()
	}
	answerCache := biz.NewAnswerCache(redisRaw, &biz.AnswerCacheConfig{
		Enabled: opts.QA.Cache.Enabled,
		TTL:     opts.QA.Cache.TTL,
	})
	ingestor := biz.NewIngestor(
		storeFactory.Documents(), vectorIndex, blobStore, extractors, extractPool, answerCache,
		&biz.IngestorConfig{
			ChunkSize:    opts.Ingest.ChunkSize,
			ChunkOverlap: opts.Ingest.ChunkOverlap,
		})
	answerer := biz.NewAnswerer(vectorIndex, chat, answerCache, &biz.AnswererConfig{
		MaxChunks:      opts.QA.MaxChunks,
		MaxChunksLimit: opts.QA.MaxChunksLimit,
		ContextBudget:  opts.QA.ContextBudget,
		PromptTemplate: opts.QA.PromptTemplate,
	})
	service := biz.NewService(ingestor, answerer)
	logger.Info("Service layer initialized")

	// 10. 初始化 Handler 层
	storageManager := storage.NewManager()
	storageManager.MustRegister("postgres", pgClient)
	if redisClient != nil {
		storageManager.MustRegister("redis", redisClient)
	}
	storageManager.MustRegister("milvus", &milvusHealth{
		client:     milvusClient,
		collection: opts.Ingest.Collection,
	})

	docHandler := handler.NewDocumentHandler(service, opts.HTTP.MaxUploadBytes)
	qaHandler := handler.NewQAHandler(service)
	healthHandler := handler.NewHealthHandler(storageManager)
	logger.Info("Handler layer initialized")

	// 11. 初始化服务器并注册路由
	srv := NewServer(opts.HTTP)
	router.Register(srv.Engine(), docHandler, qaHandler, healthHandler)

	// 12. 启动服务器
	logger.Info("docquery service is ready")
	return srv.Run()
}

// milvusHealth 将 Milvus 客户端适配到存储健康检查接口。
type milvusHealth struct {
	client     *milvus.Client
	collection string
}

var _ storage.Client = (*milvusHealth)(nil)

func (m *milvusHealth) Name() string { return "milvus" }

func (m *milvusHealth) Ping(ctx context.Context) error {
	_, err := m.client.GetCollectionStats(ctx, m.collection)
	return err
}

func (m *milvusHealth) Close() error {
	return m.client.Close(context.Background())
}

func (m *milvusHealth) Health() storage.HealthChecker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return m.Ping(ctx)
	}
}

func printBanner() {
	fmt.Printf("Starting %s...\n", appName)
}
