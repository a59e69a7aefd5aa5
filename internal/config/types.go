package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"` // "development" | "production"
	JWTSecret      string             `yaml:"jwt_secret"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	Paths          RuntimePathsConfig `yaml:"paths"`
	Storage        StorageConfig      `yaml:"storage"`
	Notify         NotifyConfig       `yaml:"notify"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
	Data string `yaml:"data"`
}

// StorageConfig selects where the serialized form collection lives.
type StorageConfig struct {
	Driver   string                `yaml:"driver"`
	Key      string                `yaml:"key"`
	Path     string                `yaml:"path"`
	Database DatabaseRuntimeConfig `yaml:"database"`
	RedisURL string                `yaml:"redis_url"`
	Mongo    MongoConfig           `yaml:"mongo"`
	S3       S3Config              `yaml:"s3"`
}

type DatabaseRuntimeConfig struct {
	DSN       string            `yaml:"dsn"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
	ObjectKey       string `yaml:"object_key"`
}

// NotifyConfig controls where submission notifications are published.
type NotifyConfig struct {
	RedisURL string `yaml:"redis_url"`
	Channel  string `yaml:"channel"`
}

type rawAppConfig struct {
	Port               int               `yaml:"port"`
	Env                string            `yaml:"env"`
	NodeEnv            string            `yaml:"node_env"`
	JWTSecret          string            `yaml:"jwt_secret"`
	JWTSecretLegacy    string            `yaml:"jwtsecret"`
	AllowedOrigins     []string          `yaml:"allowed_origins"`
	CORSAllowedOrigins []string          `yaml:"cors_allowed_origins"`
	Paths              rawPathsConfig    `yaml:"paths"`
	LogDir             string            `yaml:"log_dir"`
	DataDir            string            `yaml:"data_dir"`
	Storage            rawStorageConfig  `yaml:"storage"`
	StorageDriver      string            `yaml:"storage_driver"`
	DSN                string            `yaml:"dsn"`
	RedisURL           string            `yaml:"redis_url"`
	Notify             rawNotifyConfig   `yaml:"notify"`
	Database           rawDatabaseConfig `yaml:"database"`
	Mongo              rawMongoConfig    `yaml:"mongo"`
	S3                 rawS3Config       `yaml:"s3"`
}

type rawPathsConfig struct {
	Logs string `yaml:"logs"`
	Data string `yaml:"data"`
}

type rawStorageConfig struct {
	Driver   string            `yaml:"driver"`
	Key      string            `yaml:"key"`
	Path     string            `yaml:"path"`
	Database rawDatabaseConfig `yaml:"database"`
	RedisURL string            `yaml:"redis_url"`
	Mongo    rawMongoConfig    `yaml:"mongo"`
	S3       rawS3Config       `yaml:"s3"`
}

type rawDatabaseConfig struct {
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime *bool             `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type rawMongoConfig struct {
	URI        string `yaml:"uri"`
	URL        string `yaml:"url"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type rawS3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       *bool  `yaml:"path_style"`
	ObjectKey       string `yaml:"object_key"`
}

type rawNotifyConfig struct {
	RedisURL string `yaml:"redis_url"`
	Channel  string `yaml:"channel"`
}
