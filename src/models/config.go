package models

// MConfig Structure
type MConfig struct {
	Name           string            `yaml:"name"`
	Host           string            `yaml:"host"`
	Port           int               `yaml:"port"`
	LogLevel       string            `yaml:"log_level"`
	WriteLogs      bool              `yaml:"write_logs"`
	LogDir         string            `yaml:"log_dir"`
	SummaryFile    string            `yaml:"summary_file"`
	RecentCapacity int               `yaml:"recent_capacity"`
	MaxBodyBytes   int64             `yaml:"max_body_bytes"`
	Thresholds     MThresholdsConfig `yaml:"thresholds"`
	Storage        MStorageConfig    `yaml:"storage"`
	Admin          MAdminConfig      `yaml:"admin"`
}

type MThresholdsConfig struct {
	Faster           float64 `yaml:"faster"`
	Slower           float64 `yaml:"slower"`
	RealSlowNew      float64 `yaml:"realslow_new"`
	RealSlowOriginal float64 `yaml:"realslow_original"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // "sqlite", "postgres" or "none"
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MAdminConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	GrpcPort int    `yaml:"grpc_port"` // 0 disables the gRPC control service
}
