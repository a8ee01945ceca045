package config

type StorageConfig interface {
	GetStorageDriver() string
	GetSQLitePath() string
	GetBoltPath() string
	GetRedis() RedisSettings
}

type RedisSettings struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

var _ StorageConfig = (*EnvVars)(nil)

func (e *EnvVars) GetStorageDriver() string {
	return e.StorageDriver
}

func (e *EnvVars) GetSQLitePath() string {
	return e.SQLitePath
}

func (e *EnvVars) GetBoltPath() string {
	return e.BoltPath
}

func (e *EnvVars) GetRedis() RedisSettings {
	return RedisSettings{
		Addr:      e.RedisAddr,
		Password:  e.RedisPassword,
		DB:        e.RedisDB,
		KeyPrefix: e.RedisKeyPrefix,
	}
}
