package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"

	defaultStorageDriver = StorageFile
	defaultStorageKey    = "forms-data"
	defaultStorageFile   = "forms.json"
	defaultSQLiteFile    = "forms.db"

	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "formcraft"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"

	defaultRedisURL        = "redis://localhost:6379/0"
	defaultMongoURI        = "mongodb://localhost:27017"
	defaultMongoDatabase   = "formcraft"
	defaultMongoCollection = "kv"
	defaultS3Region        = "us-east-1"
	defaultS3ObjectKey     = "formcraft/forms-data.json"
	defaultNotifyChannel   = "formcraft:notify"

	envPrefix = "FORMCRAFT_"
)

// Storage drivers accepted by storage.driver.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageMySQL  = "mysql"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"
	StorageS3     = "s3"
)
