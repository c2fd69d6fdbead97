package config

import (
	"time"
)

// Compile time variables are set by -ldflags.
var (
	ServiceVersion string
	CommitSHA      string
	APIVersion     string
)

const (
	Development = 1 << iota
	Sandbox
	Staging
	Production
)

type (
	ServiceConfig struct {
		AppConfig     AppConfig           `json:"app_config"`
		Logging       LoggingConfig       `json:"logging"`
		Telemetry     Telemetry           `json:"telemetry"`
		SecretStorage SecretStorageConfig `json:"secret_storage"`
		HTTPServer    HTTPServerConfig    `json:"http_server"`
		Fanout        FanoutConfig        `json:"fanout"`
		Cache         CacheConfig         `json:"cache"`
		Storage       StorageConfig       `json:"storage"`
		Queue         QueueConfig         `json:"queue"`
		Outbox        OutboxConfig        `json:"outbox"`
		Consumer      ConsumerConfig      `json:"consumer"`
		PeerService   PeerServiceConfig   `json:"peer_service"`
		Expiry        ExpiryConfig        `json:"expiry"`
		Backoff       BackoffConfig       `json:"backoff"`
		CircuitBreaker CircuitBreakerConfig `json:"circuit_breaker"`
	}

	AppConfig struct {
		ServiceName    string `envconfig:"APP_SERVICE_NAME" default:"svc-orders" json:"service_name"`
		ServiceVersion string `envconfig:"APP_SERVICE_VERSION" default:"0.0.0" json:"service_version"`
		CommitSHA      string `envconfig:"APP_COMMIT_SHA" default:"unknown" json:"commit_sha"`
		APIVersion     string `envconfig:"APP_API_VERSION" default:"v1" json:"api_version"`
		Env            string `envconfig:"APP_ENVIRONMENT" default:"unknown" json:"env"`
	}

	LoggingConfig struct {
		Level     string          `envconfig:"LOGGING_LEVEL" default:"info" json:"level"`
		Format    string          `envconfig:"LOGGING_FORMAT" default:"json" json:"format"`
		AccessLog AccessLogConfig `json:"access_log"`
	}

	AccessLogConfig struct {
		Enabled            bool `envconfig:"ACCESS_LOG_ENABLED" default:"true" json:"enabled"`
		LogHealthChecks    bool `envconfig:"ACCESS_LOG_HEALTH_CHECKS" default:"false" json:"log_health_checks"`
		IncludeQueryParams bool `envconfig:"ACCESS_LOG_INCLUDE_QUERY_PARAMS" default:"true" json:"include_query_params"`
	}

	Telemetry struct {
		ExporterType string `envconfig:"OTEL_EXPORTER" default:"grpc" json:"exporter_type"`

		OtelGRPCHost       string `envconfig:"OTEL_HOST" json:"otel_grpc_host"`
		OtelGRPCPort       string `envconfig:"OTEL_PORT" default:"4317" json:"otel_grpc_port"`
		OtelProductCluster string `envconfig:"OTEL_PRODUCT_CLUSTER" json:"otel_product_cluster"`

		Metrics Metrics `json:"metrics"`
		Traces  Traces  `json:"traces"`
	}

	Metrics struct {
		Enabled bool `envconfig:"METRICS_ENABLED" default:"false" json:"enabled"`
	}

	Traces struct {
		Enabled      bool    `envconfig:"TRACES_ENABLED" default:"false" json:"enabled"`
		SamplerRatio float64 `envconfig:"TRACES_SAMPLER_RATIO" default:"1" json:"sampler_ratio"`
	}

	SecretStorageConfig struct {
		Enabled       bool          `envconfig:"VAULT_ENABLED" default:"true" json:"enabled"`
		Address       string        `envconfig:"VAULT_ADDRESS" default:"http://vault:8200" json:"address"`
		Token         string        `envconfig:"VAULT_TOKEN" default:"bottom-Secret" json:"token,omitempty"`
		RoleID        string        `envconfig:"VAULT_ROLE_ID" default:"" json:"role_id,omitempty"`
		SecretID      string        `envconfig:"VAULT_SECRET_ID" default:"" json:"secret_id,omitempty"`
		AuthMethod    string        `envconfig:"VAULT_AUTH_METHOD" default:"token" json:"auth_method"`
		MountPath     string        `envconfig:"VAULT_MOUNT_PATH" default:"svc-orders" json:"mount_path"`
		Namespace     string        `envconfig:"VAULT_NAMESPACE" default:"" json:"namespace,omitempty"`
		Timeout       time.Duration `envconfig:"VAULT_TIMEOUT" default:"30s" json:"timeout"`
		MaxRetries    int           `envconfig:"VAULT_MAX_RETRIES" default:"3" json:"max_retries"`
		TLSSkipVerify bool          `envconfig:"VAULT_TLS_SKIP_VERIFY" default:"false" json:"tls_skip_verify"`
		PollInterval  time.Duration `envconfig:"VAULT_POLL_INTERVAL" default:"24h" json:"poll_interval"`
	}

	HTTPServerConfig struct {
		Port            int           `envconfig:"HTTP_SERVER_PORT" default:"8088" json:"port"`
		Host            string        `envconfig:"HTTP_SERVER_HOST" default:"0.0.0.0" json:"host"`
		ReadTimeout     time.Duration `envconfig:"HTTP_SERVER_READ_TIMEOUT" default:"30s" json:"read_timeout"`
		WriteTimeout    time.Duration `envconfig:"HTTP_SERVER_WRITE_TIMEOUT" default:"30s" json:"write_timeout"`
		IdleTimeout     time.Duration `envconfig:"HTTP_SERVER_IDLE_TIMEOUT" default:"120s" json:"idle_timeout"`
		ShutdownTimeout time.Duration `envconfig:"HTTP_SERVER_SHUTDOWN_TIMEOUT" default:"30s" json:"shutdown_timeout"`
	}

	// FanoutConfig configures the C8 websocket relay that tees every
	// published domain event (and the dead-letter topic) to connected
	// browser clients.
	FanoutConfig struct {
		ReadBufferSize    int           `envconfig:"FANOUT_READ_BUFFER_SIZE" default:"1024" json:"read_buffer_size"`
		WriteBufferSize   int           `envconfig:"FANOUT_WRITE_BUFFER_SIZE" default:"1024" json:"write_buffer_size"`
		HandshakeTimeout  time.Duration `envconfig:"FANOUT_HANDSHAKE_TIMEOUT" default:"10s" json:"handshake_timeout"`
		PingInterval      time.Duration `envconfig:"FANOUT_PING_INTERVAL" default:"30s" json:"ping_interval"`
		PongTimeout       time.Duration `envconfig:"FANOUT_PONG_TIMEOUT" default:"60s" json:"pong_timeout"`
		ClientSendBuffer  int           `envconfig:"FANOUT_CLIENT_SEND_BUFFER" default:"256" json:"client_send_buffer"`
		SubscribedTopics  []string      `envconfig:"FANOUT_SUBSCRIBED_TOPICS" default:"users.created,users.status-changed,orders.created,orders.status-changed,orders.cancelled,dead-letter" json:"subscribed_topics"`
	}

	StorageConfig struct {
		Host            string        `envconfig:"POSTGRES_HOST" default:"postgres" json:"host"`
		Port            int           `envconfig:"POSTGRES_PORT" default:"5432" json:"port"`
		Database        string        `envconfig:"POSTGRES_DATABASE" default:"orders" json:"database"`
		Username        string        `envconfig:"POSTGRES_USERNAME" default:"postgres" json:"username"`
		Password        string        `envconfig:"POSTGRES_PASSWORD" default:"" json:"password,omitempty"`
		SSLMode         string        `envconfig:"POSTGRES_SSL_MODE" default:"disable" json:"ssl_mode"`
		MaxOpenConns    int           `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"25" json:"max_open_conns"`
		MaxIdleConns    int           `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5" json:"max_idle_conns"`
		ConnMaxLifetime time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"5m" json:"conn_max_lifetime"`
		ConnMaxIdleTime time.Duration `envconfig:"POSTGRES_CONN_MAX_IDLE_TIME" default:"5m" json:"conn_max_idle_time"`
		ConnectTimeout  time.Duration `envconfig:"POSTGRES_CONNECT_TIMEOUT" default:"10s" json:"connect_timeout"`
		QueryTimeout    time.Duration `envconfig:"POSTGRES_QUERY_TIMEOUT" default:"30s" json:"query_timeout"`
	}

	QueueConfig struct {
		Host           string        `envconfig:"RABBITMQ_HOST" default:"rabbitmq" json:"host"`
		Port           int           `envconfig:"RABBITMQ_PORT" default:"5672" json:"port"`
		Username       string        `envconfig:"RABBITMQ_USERNAME" default:"admin" json:"username"`
		Password       string        `envconfig:"RABBITMQ_PASSWORD" default:"bottom.Secret" json:"password,omitempty"`
		VirtualHost    string        `envconfig:"RABBITMQ_VIRTUAL_HOST" default:"/" json:"virtual_host"`
		ExchangeName   string        `envconfig:"RABBITMQ_EXCHANGE_NAME" default:"commerce" json:"exchange_name"`
		RoutingKey     string        `envconfig:"RABBITMQ_ROUTING_KEY" default:"#" json:"routing_key"`
		QueueName      string        `envconfig:"RABBITMQ_NAME" default:"orders_queue" json:"queue_name"`
		DeadLetterTopic string       `envconfig:"RABBITMQ_DEAD_LETTER_TOPIC" default:"dead-letter" json:"dead_letter_topic"`
		ConnectTimeout time.Duration `envconfig:"RABBITMQ_CONNECT_TIMEOUT" default:"10s" json:"connect_timeout"`
		Heartbeat      time.Duration `envconfig:"RABBITMQ_HEARTBEAT" default:"10s" json:"heartbeat"`
		PrefetchCount  int           `envconfig:"RABBITMQ_PREFETCH_COUNT" default:"10" json:"prefetch_count"`
		Durable        bool          `envconfig:"RABBITMQ_DURABLE" default:"true" json:"durable"`
		AutoDelete     bool          `envconfig:"RABBITMQ_AUTO_DELETE" default:"false" json:"auto_delete"`
	}

	// OutboxConfig governs C3's drain loop. Unlike the teacher's
	// by-priority retry schedule, this domain has a single flat retry
	// cap per spec.md §4.2 — there is no priority concept on orders or
	// users events.
	OutboxConfig struct {
		BatchSize          int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50" json:"batch_size"`
		PollInterval       time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"500ms" json:"poll_interval"`
		LockDuration       time.Duration `envconfig:"OUTBOX_LOCK_DURATION" default:"30s" json:"lock_duration"`
		MaxRetries         int           `envconfig:"OUTBOX_MAX_RETRIES" default:"5" json:"max_retries"`
		WorkerConcurrency  int           `envconfig:"OUTBOX_WORKER_CONCURRENCY" default:"4" json:"worker_concurrency"`
		DeadLetterTopic    string        `envconfig:"OUTBOX_DEAD_LETTER_TOPIC" default:"dead-letter" json:"dead_letter_topic"`
	}

	// ConsumerConfig governs C5's idempotent cross-service consumer.
	ConsumerConfig struct {
		ConsumerGroup    string        `envconfig:"CONSUMER_GROUP" default:"orders-service" json:"consumer_group"`
		SubscribedTopics []string      `envconfig:"CONSUMER_SUBSCRIBED_TOPICS" default:"users.status-changed" json:"subscribed_topics"`
		PrefetchCount    int           `envconfig:"CONSUMER_PREFETCH_COUNT" default:"10" json:"prefetch_count"`
		DedupTTL         time.Duration `envconfig:"CONSUMER_DEDUP_TTL" default:"24h" json:"dedup_ttl"`
	}

	CacheConfig struct {
		Addr          string        `envconfig:"KEYDB_ADDR" default:"keydb:6379" json:"addr"`
		Password      string        `envconfig:"KEYDB_PASSWORD" default:"bottom.Secret" json:"password,omitempty"`
		DB            int           `envconfig:"KEYDB_DB" default:"0" json:"db"`
		PoolSize      int           `envconfig:"KEYDB_POOL_SIZE" default:"10" json:"pool_size"`
		MinIdleConns  int           `envconfig:"KEYDB_MIN_IDLE_CONNS" default:"3" json:"min_idle_conns"`
		DialTimeout   time.Duration `envconfig:"KEYDB_DIAL_TIMEOUT" default:"5s" json:"dial_timeout"`
		ReadTimeout   time.Duration `envconfig:"KEYDB_READ_TIMEOUT" default:"3s" json:"read_timeout"`
		WriteTimeout  time.Duration `envconfig:"KEYDB_WRITE_TIMEOUT" default:"3s" json:"write_timeout"`
		PoolTimeout   time.Duration `envconfig:"KEYDB_POOL_TIMEOUT" default:"5s" json:"pool_timeout"`
		MaxRetries    int           `envconfig:"KEYDB_MAX_RETRIES" default:"3" json:"max_retries"`
		DefaultExpiry time.Duration `envconfig:"KEYDB_DEFAULT_EXPIRY" default:"24h" json:"default_expiry"`
	}

	// PeerServiceConfig locates the Users service for the synchronous,
	// read-only existence/status probe Create-Order performs (spec.md
	// §4.4, C4), guarded by a circuit breaker.
	PeerServiceConfig struct {
		BaseURL        string        `envconfig:"USERS_SERVICE_BASE_URL" default:"http://users-api:8088" json:"base_url"`
		Timeout        time.Duration `envconfig:"USERS_SERVICE_TIMEOUT" default:"2s" json:"timeout"`
		Retries        int           `envconfig:"USERS_SERVICE_RETRIES" default:"2" json:"retries"`
		RetryWaitTime  time.Duration `envconfig:"USERS_SERVICE_RETRY_WAIT_TIME" default:"100ms" json:"retry_wait_time"`
	}

	// ExpiryConfig governs C7's periodic scan for orders past their
	// payment/fulfilment deadline.
	ExpiryConfig struct {
		ScanInterval         time.Duration `envconfig:"EXPIRY_SCAN_INTERVAL" default:"5s" json:"scan_interval"`
		BatchSize            int           `envconfig:"EXPIRY_BATCH_SIZE" default:"50" json:"batch_size"`
		DefaultExpiry        time.Duration `envconfig:"EXPIRY_DEFAULT" default:"30m" json:"default_expiry"`
		InactivityThreshold  time.Duration `envconfig:"INACTIVITY_THRESHOLD" default:"720h" json:"inactivity_threshold"`
	}

	BackoffConfig struct {
		// BaseDelay is the amount of time to backoff after the first failure.
		BaseDelay time.Duration `environment:"BASE_DELAY" default:"1s" json:"base_delay"`
		// Multiplier is the factor with which to multiply backoffs after a
		// failed retry. Should ideally be greater than 1.
		Multiplier float64 `environment:"MULTIPLIER" default:"1.6" json:"multiplier"`
		// Jitter is the factor with which backoffs are randomized.
		Jitter float64 `environment:"JITTER" default:"0.2" json:"jitter"`
		// MaxDelay is the upper bound of backoff delay.
		MaxDelay time.Duration `environment:"MAX_DELAY" default:"10s" json:"max_delay"`
	}

	CircuitBreakerConfig struct {
		MaxRequests uint32        `envconfig:"CB_MAX_REQUESTS" default:"3" json:"max_requests"`
		Interval    time.Duration `envconfig:"CB_INTERVAL" default:"10s" json:"interval"`
		Timeout     time.Duration `envconfig:"CB_TIMEOUT" default:"60s" json:"timeout"`
	}
)
