package wire

import (
	"Folio/internal/api"
	"Folio/internal/api/config"
	"Folio/internal/api/handler"
	"Folio/internal/job"
	"Folio/internal/pkg/cron"
	"Folio/internal/pkg/es"
	"Folio/internal/pkg/kafka"
	"Folio/internal/pkg/minio"
	"Folio/internal/pkg/mongo"
	"Folio/internal/pkg/redis"
	"Folio/internal/pkg/security"
	"Folio/internal/repository"
	"Folio/internal/service"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	mongodb "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Services 业务服务集合，HTTP 与命令行工具共用
type Services struct {
	Auth     service.AuthService
	Activity service.ActivityService
	Media    service.MediaService
	Module   service.ModuleService
	Stream   service.StreamService
	Search   service.SearchService
	Articles service.ContentService
	Projects service.ContentService
	Posts    service.ContentService

	uploads   service.UploadTracker
	storage   service.ObjectStorage
	contentES es.ContentRepo
}

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	Services *Services
	CronMgr  *cron.Manager
	// KafkaManager 未启用索引同步时为 nil
	KafkaManager *kafka.ConsumerManager
}

// BuildServices mongoDB 与 esClient 可为 nil，对应的活动日志与搜索能力随之关闭
func BuildServices(db *gorm.DB, mongoDB *mongodb.Database, esClient *elasticsearch.TypedClient, storage *minio.Storage, cfg *config.Config) *Services {
	mediaRepo := repository.NewMediaRepo(db)
	moduleRepo := repository.NewModuleRepo(db)
	userRepo := repository.NewUserRepo(db)
	articleRepo := repository.NewArticleRepo(db)
	projectRepo := repository.NewProjectRepo(db)
	postRepo := repository.NewPostRepo(db)

	var activityRepo mongo.ActivityRepo
	if mongoDB != nil {
		activityRepo = mongo.NewActivityRepo(mongoDB)
	}
	var contentES es.ContentRepo
	if esClient != nil {
		contentES = es.NewContentRepo(esClient)
	}

	uploads := redis.NewMediaTempStore()
	admins := security.NewAdminList(cfg.Auth.AdminEmails)
	activityService := service.NewActivityService(activityRepo)

	return &Services{
		Auth:     service.NewAuthService(userRepo, redis.NewTokenStore(), admins),
		Activity: activityService,
		Media:    service.NewMediaService(mediaRepo, moduleRepo, storage, uploads, activityService),
		Module:   service.NewModuleService(moduleRepo, activityService),
		Stream:   service.NewStreamService(mediaRepo, articleRepo, projectRepo, storage, cfg.Stream),
		Search:   service.NewSearchService(contentES, mediaRepo, articleRepo, projectRepo, postRepo),
		Articles: service.NewArticleService(articleRepo, activityService),
		Projects: service.NewProjectService(projectRepo, activityService),
		Posts:    service.NewPostService(postRepo, activityService),

		uploads:   uploads,
		storage:   storage,
		contentES: contentES,
	}
}

func BuildApplication(db *gorm.DB, mongoDB *mongodb.Database, esClient *elasticsearch.TypedClient, storage *minio.Storage, cfg *config.Config) (*ApplicationContainer, error) {
	svc := BuildServices(db, mongoDB, esClient, storage, cfg)

	handlers := &api.HandlersGroup{
		AuthHandler:     handler.NewAuthHandler(svc.Auth),
		StreamHandler:   handler.NewStreamHandler(svc.Stream),
		MediaHandler:    handler.NewMediaHandler(svc.Media),
		ModuleHandler:   handler.NewModuleHandler(svc.Module, svc.Auth),
		ContentHandler:  handler.NewContentHandler(svc.Auth, svc.Articles, svc.Projects, svc.Posts),
		SearchHandler:   handler.NewSearchHandler(svc.Search),
		ActivityHandler: handler.NewActivityHandler(svc.Activity),
	}

	router := api.SetupRouter(handlers, svc.Auth)
	if len(cfg.Server.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			return nil, err
		}
	}

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob(svc.uploads, svc.storage))

	app := &ApplicationContainer{
		Router:   router,
		DB:       db,
		Services: svc,
		CronMgr:  cronMgr,
	}

	if cfg.Kafka.Enable && svc.contentES != nil {
		kafkaMgr, err := kafka.NewConsumerManager(cfg.Kafka, svc.contentES)
		if err != nil {
			return nil, err
		}
		app.KafkaManager = kafkaMgr
	}

	return app, nil
}
