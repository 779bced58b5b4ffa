package settings

import (
	"os"

	"github.com/flynn/json5"
	"github.com/pkg/errors"
)

var Version = "0.1"

// Where the registers live: "emu", "i2cdev" or "smbus"
var Backend = "emu"

// i2c-dev node used by the i2cdev backend
var I2CDev = "/dev/i2c-1"

// Bus number used by the smbus backend
var I2CBus = 1

// 7-bit slave address
var I2CAddr = 0x18

// Script run against the chip before a command
var ScriptFile = ""

var LogLevel = "info"

// Colour in listings
var Color = true

// Keep a register cache and serve reads from it
var UseCache = false

// Audio in and out
var InputWav = "input.wav"
var OutputWav = "output.wav"

// Stream result to speaker?
var Stream = false

// Publisher
var RedisAddr = "localhost:6379"
var RedisPrefix = "tas2505"
var WatchInterval = 0.5 // seconds

// Step through scripts
var Debugger = false

// Print extra debug info
var PrintDebug = false

// File mirrors the settings in a json5 config file. Absent keys keep
// their current value.
type File struct {
	Backend       *string  `json:"backend"`
	I2CDev        *string  `json:"dev"`
	I2CBus        *int     `json:"bus"`
	I2CAddr       *int     `json:"addr"`
	ScriptFile    *string  `json:"script"`
	LogLevel      *string  `json:"log_level"`
	Color         *bool    `json:"color"`
	UseCache      *bool    `json:"cache"`
	RedisAddr     *string  `json:"redis_addr"`
	RedisPrefix   *string  `json:"redis_prefix"`
	WatchInterval *float64 `json:"watch_interval"`
}

// LoadConfig overrides the settings with those found in filename.
func LoadConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	var f File
	if err := json5.Unmarshal(data, &f); err != nil {
		return errors.Wrapf(err, "parsing %s", filename)
	}
	f.apply()
	return nil
}

func (f *File) apply() {
	setString(&Backend, f.Backend)
	setString(&I2CDev, f.I2CDev)
	setInt(&I2CBus, f.I2CBus)
	setInt(&I2CAddr, f.I2CAddr)
	setString(&ScriptFile, f.ScriptFile)
	setString(&LogLevel, f.LogLevel)
	if f.Color != nil {
		Color = *f.Color
	}
	if f.UseCache != nil {
		UseCache = *f.UseCache
	}
	setString(&RedisAddr, f.RedisAddr)
	setString(&RedisPrefix, f.RedisPrefix)
	if f.WatchInterval != nil {
		WatchInterval = *f.WatchInterval
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
