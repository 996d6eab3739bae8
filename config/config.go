package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"patriot-buddy/internal/domain"
)

type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Lights     LightsConfig     `yaml:"lights"`
	Weather    WeatherConfig    `yaml:"weather"`
	Audio      AudioConfig      `yaml:"audio"`
	STT        STTConfig        `yaml:"stt"`
	TTS        TTSConfig        `yaml:"tts"`
	Pushover   PushoverConfig   `yaml:"pushover"`
	History    HistoryConfig    `yaml:"history"`
	Proxy      ProxyConfig      `yaml:"proxy"`
	Log        LogConfig        `yaml:"log"`
	APIsFile   string           `yaml:"apis_file"`
	Mode       string           `yaml:"mode"`
	QueueSize  int              `yaml:"queue_size"`
}

// GenerationConfig selects the text generation backend shared by the
// classifier and every handler.
type GenerationConfig struct {
	Provider string `yaml:"provider"`
	URL      string `yaml:"url"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

type LightsConfig struct {
	Backend       string              `yaml:"backend"`
	Timeout       string              `yaml:"timeout"`
	IFTTT         IFTTTConfig         `yaml:"ifttt"`
	HomeAssistant HomeAssistantConfig `yaml:"homeassistant"`
	Tuya          TuyaConfig          `yaml:"tuya"`
}

type IFTTTConfig struct {
	Key      string `yaml:"key"`
	OnEvent  string `yaml:"on_event"`
	OffEvent string `yaml:"off_event"`
}

type HomeAssistantConfig struct {
	URL      string `yaml:"url"`
	Token    string `yaml:"token"`
	EntityID string `yaml:"entity_id"`
}

type TuyaConfig struct {
	ClientID   string `yaml:"client_id"`
	Secret     string `yaml:"secret"`
	Region     string `yaml:"region"`
	DeviceID   string `yaml:"device_id"`
	SwitchCode string `yaml:"switch_code"`
}

type WeatherConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

type AudioConfig struct {
	Source     string `yaml:"source"`
	HTTPAddr   string `yaml:"http_addr"`
	FileDir    string `yaml:"file_dir"`
	SampleRate int    `yaml:"sample_rate"`
	AuthToken  string `yaml:"auth_token"`
}

type STTConfig struct {
	APIKey   string `yaml:"api_key"`
	Language string `yaml:"language"`
}

type TTSConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	VoiceID string `yaml:"voice_id"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type HistoryConfig struct {
	Path string `yaml:"path"`
}

type ProxyConfig struct {
	SOCKS5 string `yaml:"socks5"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML and fills defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default is the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Generation.Provider == "" {
		c.Generation.Provider = "ollama"
	}
	if c.Generation.Timeout == "" {
		c.Generation.Timeout = "30s"
	}
	if c.Lights.Backend == "" {
		c.Lights.Backend = "ifttt"
	}
	if c.Lights.Timeout == "" {
		c.Lights.Timeout = "10s"
	}
	if c.Lights.IFTTT.Key == "" {
		c.Lights.IFTTT.Key = os.Getenv("IFTTT_API_KEY")
	}
	if c.Lights.Tuya.Region == "" {
		c.Lights.Tuya.Region = "us"
	}
	if c.Weather.Timeout == "" {
		c.Weather.Timeout = "10s"
	}
	if c.Audio.Source == "" {
		c.Audio.Source = "http"
	}
	if c.Audio.HTTPAddr == "" {
		c.Audio.HTTPAddr = ":8080"
	}
	if c.Audio.FileDir == "" {
		c.Audio.FileDir = "./audio"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.STT.Language == "" {
		c.STT.Language = "en"
	}
	if c.TTS.APIKey == "" {
		c.TTS.APIKey = os.Getenv("ELEVENLABS_API_KEY")
	}
	if c.TTS.VoiceID == "" {
		c.TTS.VoiceID = os.Getenv("VOICE_ID")
	}
	if c.History.Path == "" {
		c.History.Path = "patriot_buddy_history.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.APIsFile == "" {
		c.APIsFile = DefaultAPIsFile
	}
	if c.QueueSize == 0 {
		c.QueueSize = 8
	}
}

func (c *Config) validate() error {
	switch c.Generation.Provider {
	case "ollama", "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("unknown generation provider %q", c.Generation.Provider)
	}
	switch c.Lights.Backend {
	case "ifttt", "homeassistant", "tuya", "none":
	default:
		return fmt.Errorf("unknown lights backend %q", c.Lights.Backend)
	}
	if _, err := c.InitialMode(); err != nil {
		return err
	}
	for name, v := range map[string]string{
		"generation.timeout": c.Generation.Timeout,
		"lights.timeout":     c.Lights.Timeout,
		"weather.timeout":    c.Weather.Timeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
	}
	return nil
}

func (c *Config) InitialMode() (domain.Mode, error) {
	m, err := domain.ParseMode(c.Mode)
	if err != nil {
		return domain.ModeNormal, fmt.Errorf("invalid mode: %w", err)
	}
	return m, nil
}

// GenerationTimeout, LightsTimeout and WeatherTimeout are validated by Parse.
func (c *Config) GenerationTimeout() time.Duration { return mustDuration(c.Generation.Timeout) }
func (c *Config) LightsTimeout() time.Duration     { return mustDuration(c.Lights.Timeout) }
func (c *Config) WeatherTimeout() time.Duration    { return mustDuration(c.Weather.Timeout) }

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return d
}
