package config

// YAMLConfig is the on-disk shape of the CLI config file.
type YAMLConfig struct {
	Target      string `yaml:"target"`
	LockTimeout string `yaml:"lock_timeout"`
	SysctlPath  string `yaml:"sysctl_path"`
	Platform    string `yaml:"platform"`
	Backup      *bool  `yaml:"backup"`
	LogLevel    string `yaml:"log_level"`
}
