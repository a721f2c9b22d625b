package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	Server ServerConfig     `yaml:"server"`
	Admin  AdminConfig      `yaml:"admin"`
	Upload UploadFileConfig `yaml:"upload"`
	Pin    PinConfig        `yaml:"pin"`
	UI     UIConfig         `yaml:"ui"`
	Notify NotifyConfig     `yaml:"notify"`
	Shares []ShareEntry     `yaml:"shares,omitempty"`
}

// ServerConfig controls the public listening socket.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	PortRange      int    `yaml:"portRange"`      // how many ports above Port may be tried
	BindRetryDelay string `yaml:"bindRetryDelay"` // time.Duration string, e.g. "1s"
	StopGrace      string `yaml:"stopGrace"`
}

// AdminConfig controls the loopback channel used by the desktop shell.
type AdminConfig struct {
	Addr string `yaml:"addr"`
}

type UploadFileConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	MaxFileSize int64  `yaml:"maxFileSize"` // bytes per uploaded item
}

type PinConfig struct {
	Enabled           bool `yaml:"enabled"`    // generate a PIN on startup
	SignCookie        bool `yaml:"signCookie"` // sign pin-verified cookie, incompatible with plain clients
	AttemptsPerMinute int  `yaml:"attemptsPerMinute"`
}

type UIConfig struct {
	Language string `yaml:"language"` // en | zh
}

type NotifyConfig struct {
	Socket string `yaml:"socket"` // unix socket for status events, empty disables
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log           string
	UseConfigPath string
	UsePort       int
	UseUploadDir  string
	UsePin        bool
	UseShares     []string // name=path
}
