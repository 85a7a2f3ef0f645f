package config

import "github.com/ykhdr/crack-hash/common/logging"

type LogConfig struct {
	LogLevel string `kdl:"log-level"`
}

func (c *LogConfig) GetLogLevel() string {
	return c.LogLevel
}

type hasLogLevel interface {
	GetLogLevel() string
}

// SetupLogger configures logging from any config embedding LogConfig.
func SetupLogger(cfg any) {
	setupLogger(cfg)
}

func setupLogger(cfg any) {
	logLevel := logging.InfoLevel
	if logCfg, ok := cfg.(hasLogLevel); ok {
		logLevel = logging.ParseLevel(logCfg.GetLogLevel())
	}
	logging.Setup(logLevel)
}
