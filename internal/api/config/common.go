package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Elastic  ElasticConfig  `mapstructure:"elastic"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Stream   StreamConfig   `mapstructure:"stream"`
	Logstash LogstashConfig `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string   `mapstructure:"internal_endpoint"`
	ExternalEndpoint string   `mapstructure:"external_endpoint"`
	AccessKey        string   `mapstructure:"access_key"`
	SecretKey        string   `mapstructure:"secret_key"`
	MainBucket       string   `mapstructure:"main_bucket"`
	Buckets          []string `mapstructure:"buckets"`
	InternalUseSSL   bool     `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool     `mapstructure:"external_use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	ContentIndex string `mapstructure:"content_index"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
	Topic    string         `mapstructure:"topic"`
	GroupID  string         `mapstructure:"group_id"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// AuthConfig 鉴权配置
type AuthConfig struct {
	JWTSecret     string   `mapstructure:"jwt_secret"`
	TokenTTLHours int      `mapstructure:"token_ttl_hours"`
	AdminEmails   []string `mapstructure:"admin_emails"`
}

// StreamConfig 首页时间流配置
type StreamConfig struct {
	TextFetchConcurrency int         `mapstructure:"text_fetch_concurrency"`
	Promo                PromoConfig `mapstructure:"promo"`
}

// PromoConfig 简历推广卡片
type PromoConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Title    string `mapstructure:"title"`
	Link     string `mapstructure:"link"`
	Position int    `mapstructure:"position"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
