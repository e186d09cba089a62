// Package env builds the runtime environment of CMPP host programs from
// defaults, environment variables, a YAML file and command line flags.
package env

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
)

// LinkConfig selects the slave connection.
type LinkConfig struct {
	// URL of the byte stream, see package link.
	URL string `yaml:"url"`
	// Baud rate, 0 takes the equipment configuration.
	Baud    int           `yaml:"baud"`
	Channel int           `yaml:"channel"`
	Timeout time.Duration `yaml:"timeout"`
	Retries int           `yaml:"retries"`
}

// EEPROMConfig selects the parameter storage.
type EEPROMConfig struct {
	// Path of the image file, empty keeps parameters in memory.
	Path string `yaml:"path"`
}

// MQTTConfig configures the bridge.
type MQTTConfig struct {
	// URL e.g. mqtt://host:port/topic-prefix
	URL            string        `yaml:"url"`
	ID             string        `yaml:"id"`
	StatusInterval time.Duration `yaml:"status_interval"`
}

// Config is the complete configuration.
type Config struct {
	Link LinkConfig `yaml:"link"`
	// Axis overrides the drive of the axis configuration when all fields
	// are set.
	Axis   transport.MechanicalProperties `yaml:"axis"`
	EEPROM EEPROMConfig                   `yaml:"eeprom"`
	MQTT   MQTTConfig                     `yaml:"mqtt"`
}

var defaultConfig = Config{
	Link: LinkConfig{
		URL:     "serial:///dev/ttyUSB0",
		Timeout: datalink.DefaultTimeout,
	},
	MQTT: MQTTConfig{
		URL:            "mqtt://localhost:1883/cmpp/",
		StatusInterval: time.Second,
	},
}

var (
	configFile string
	flagConfig Config
)

// overrides copies flag values into a config, keyed by flag name.
var overrides = map[string]func(dst, src *Config){
	"link":         func(dst, src *Config) { dst.Link.URL = src.Link.URL },
	"baud":         func(dst, src *Config) { dst.Link.Baud = src.Link.Baud },
	"channel":      func(dst, src *Config) { dst.Link.Channel = src.Link.Channel },
	"timeout":      func(dst, src *Config) { dst.Link.Timeout = src.Link.Timeout },
	"retries":      func(dst, src *Config) { dst.Link.Retries = src.Link.Retries },
	"eeprom":       func(dst, src *Config) { dst.EEPROM.Path = src.EEPROM.Path },
	"mqtt":         func(dst, src *Config) { dst.MQTT.URL = src.MQTT.URL },
	"id":           func(dst, src *Config) { dst.MQTT.ID = src.MQTT.ID },
	"status-every": func(dst, src *Config) { dst.MQTT.StatusInterval = src.MQTT.StatusInterval },
}

func init() {
	if val := os.Getenv("CMPP_LINK_URL"); val != "" {
		defaultConfig.Link.URL = val
	}
	if val := os.Getenv("CMPP_EEPROM"); val != "" {
		defaultConfig.EEPROM.Path = val
	}
	if val := os.Getenv("CMPP_MQTT_URL"); val != "" {
		defaultConfig.MQTT.URL = val
	}
	configFile = os.Getenv("CMPP_CONFIG")
}

// SetupFlags sets command line flags on fs, or the default flag set if
// fs is nil.
func SetupFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	flagConfig = defaultConfig
	fs.StringVar(&configFile, "config", configFile, "YAML config file")
	fs.StringVar(&flagConfig.Link.URL, "link", flagConfig.Link.URL, "Slave link URL")
	fs.IntVar(&flagConfig.Link.Baud, "baud", flagConfig.Link.Baud, "Serial baud rate, 0 from equipment config")
	fs.IntVar(&flagConfig.Link.Channel, "channel", flagConfig.Link.Channel, "Slave channel")
	fs.DurationVar(&flagConfig.Link.Timeout, "timeout", flagConfig.Link.Timeout, "Transaction timeout")
	fs.IntVar(&flagConfig.Link.Retries, "retries", flagConfig.Link.Retries, "Retries on link errors")
	fs.StringVar(&flagConfig.EEPROM.Path, "eeprom", flagConfig.EEPROM.Path, "EEPROM image file")
	fs.StringVar(&flagConfig.MQTT.URL, "mqtt", flagConfig.MQTT.URL, "MQTT broker URL")
	fs.StringVar(&flagConfig.MQTT.ID, "id", flagConfig.MQTT.ID, "Bridge ID, default machine ID")
	fs.DurationVar(&flagConfig.MQTT.StatusInterval, "status-every", flagConfig.MQTT.StatusInterval, "Status publishing interval")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config from defaults, the config file and the flags
// explicitly set on the default flag set.
func NewConfig() (*Config, error) {
	return NewConfigFrom(flag.CommandLine)
}

// NewConfigFrom is NewConfig with flags from fs.
func NewConfigFrom(fs *flag.FlagSet) (*Config, error) {
	conf := defaultConfig
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		if override, ok := overrides[f.Name]; ok {
			override(&conf, &flagConfig)
		}
	})
	if conf.MQTT.ID == "" {
		conf.MQTT.ID = MachineID()
	}
	return &conf, nil
}

// LoadFile merges a YAML file into the config.
func (c *Config) LoadFile(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return c.Parse(data)
}

// Parse merges YAML data into the config.
func (c *Config) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config YAML: %w", err)
	}
	return nil
}

// Mechanics tells whether Axis is complete.
func (c *Config) Mechanics() (transport.MechanicalProperties, bool) {
	return c.Axis, c.Axis.PulsesPerMmX100() > 0
}
