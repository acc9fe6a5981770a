package config

// File represents the structure of the dexopt.yaml configuration file.
type File struct {
	PackageName    string            `yaml:"package_name" validate:"package_name"`
	Dex2oat        string            `yaml:"dex2oat"`
	CompilerEnv    map[string]string `yaml:"compiler_env" validate:"dive,keys,env_key,endkeys"`
	InstructionSet string            `yaml:"instruction_set" validate:"omitempty,oneof=arm arm64 x86 x86_64 riscv64"`
	SDKInt         int               `yaml:"sdk_int" validate:"gte=0,lte=100"`
	Daemon         DaemonDTO         `yaml:"daemon"`
	Log            LogDTO            `yaml:"log"`
}

// DaemonDTO represents the daemon section of the configuration file.
type DaemonDTO struct {
	Socket      string `yaml:"socket"`
	IdleTimeout string `yaml:"idle_timeout" validate:"omitempty,duration"`
	Autostart   *bool  `yaml:"autostart"`
	Registry    string `yaml:"registry"`
	MetricsAddr string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
}

// LogDTO represents the log section of the configuration file.
type LogDTO struct {
	JSON bool `yaml:"json"`
}
