package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type PowerCfg struct {
	LimitAmps float64 `yaml:"limit_amps"` // 0 = no budget
	WhiteCap  float64 `yaml:"white_cap"`  // 0 disables, e.g. 0.6
}

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. SPI0.0, "" = first port
	SpeedHz int    `yaml:"speed_hz"` // NRZ bit clock, 0 = driver default
}

type I2C struct {
	Bus     string `yaml:"bus"`      // e.g. I2C1, "" = first bus
	BMEAddr uint16 `yaml:"bme_addr"` // 0 = no thermometer
}

type BrightnessCfg struct {
	Auto     bool `yaml:"auto"`
	Value    int  `yaml:"value"` // manual value, 1..255
	MinDay   int  `yaml:"min_day"`
	MinNight int  `yaml:"min_night"`
	LuxMin   int  `yaml:"lux_min"`
	LuxMax   int  `yaml:"lux_max"`
}

type LuxCfg struct {
	Path  string `yaml:"path"`  // IIO illuminance file, "" = constant
	Value int    `yaml:"value"` // constant used without a sensor
}

type Config struct {
	Driver    string `yaml:"driver"`     // "spi" | "console" | "sim"
	LedConfig string `yaml:"led_config"` // e.g. 40x40@1
	TickUs    int    `yaml:"tick_us"`
	Addr      string `yaml:"addr"`
	Seed      int64  `yaml:"seed"` // 0 = time based

	Mode        int    `yaml:"mode"`
	Animation   int    `yaml:"animation"`
	Color       string `yaml:"color"`        // #RRGGBB
	ColorRandom int    `yaml:"color_random"` // 0 fixed, 1 all, 2 letter, 3 word

	Brightness BrightnessCfg `yaml:"brightness"`
	Lux        LuxCfg        `yaml:"lux"`
	Power      PowerCfg      `yaml:"power"`
	SPI        SPI           `yaml:"spi,omitempty"`
	I2C        I2C           `yaml:"i2c,omitempty"`
}

func Default() *Config {
	return &Config{
		Driver:    "spi",
		LedConfig: "40x40@1",
		TickUs:    1000,
		Addr:      ":8080",
		Mode:      1,
		Animation: 0,
		Color:     "#FFFFFF",
		Brightness: BrightnessCfg{
			Auto:     true,
			Value:    128,
			MinDay:   40,
			MinNight: 5,
			LuxMin:   0,
			LuxMax:   400,
		},
		Lux: LuxCfg{Value: 100},
		SPI: SPI{SpeedHz: 2_500_000},
	}
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Driver {
	case "spi", "console", "sim":
	default:
		errs = append(errs, fmt.Errorf("driver: unknown %q", c.Driver))
	}
	if c.TickUs <= 0 {
		errs = append(errs, fmt.Errorf("tick_us: must be > 0, got %d", c.TickUs))
	}
	if c.ColorRandom < 0 || c.ColorRandom > 3 {
		errs = append(errs, fmt.Errorf("color_random: must be 0..3, got %d", c.ColorRandom))
	}
	b := c.Brightness
	if b.MinDay < 0 || b.MinDay > 255 || b.MinNight < 0 || b.MinNight > 255 {
		errs = append(errs, errors.New("brightness: min_day and min_night must be 0..255"))
	}
	if b.LuxMax < b.LuxMin {
		errs = append(errs, errors.New("brightness: lux_max below lux_min"))
	}
	if c.SPI.SpeedHz < 0 {
		errs = append(errs, fmt.Errorf("spi.speed_hz: must be >= 0, got %d", c.SPI.SpeedHz))
	}
	if c.Power.WhiteCap < 0 || c.Power.LimitAmps < 0 {
		errs = append(errs, errors.New("power: white_cap and limit_amps must be >= 0"))
	}
	return errors.Join(errs...)
}

// Load reads path over the defaults, so a partial file only overrides what
// it names.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
