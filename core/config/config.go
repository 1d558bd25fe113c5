package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
	AppLogName        = "app.log"
)

type Configuration struct {
	configFs afero.Fs

	SerialDevice string `json:"serial_device" validate:"required"`
	BaudRate     int    `json:"baud_rate" validate:"gt=0"`

	HTTPPort int `json:"http_port" validate:"gte=0,lte=65535"`

	AllowedInet  []string `json:"allowed_inet" validate:"required,min=1,unique"`
	AllowedInet6 []string `json:"allowed_inet6" validate:"required,min=1,unique"`

	// Token bucket for POSTed messages.
	MessagesPerMinute int `json:"messages_per_minute" validate:"gt=0"`
	MessageBurst      int `json:"message_burst" validate:"gt=0"`

	Hardware Hardware `json:"hardware"`
	Display  Display  `json:"display"`
}

type Hardware struct {
	// LCD data pins in [rs, enable, d4, d5, d6, d7] order.
	LCDPins          []int `json:"lcd_pins" validate:"len=6,unique"`
	LEDPin           int   `json:"led_pin" validate:"gte=0"`
	ButtonPin        int   `json:"button_pin" validate:"gte=0"`
	BlinkMillis      int   `json:"blink_millis" validate:"gt=0"`
	ButtonPollMillis int   `json:"button_poll_millis" validate:"gt=0"`
}

type Display struct {
	Columns       int    `json:"columns" validate:"gt=0"`
	Rows          int    `json:"rows" validate:"gt=0"`
	AckText       string `json:"ack_text" validate:"required"`
	AckHoldMillis int    `json:"ack_hold_millis" validate:"gte=0"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// BlinkInterval is the LED toggle period while a message awaits an ack.
func (h *Hardware) BlinkInterval() time.Duration {
	return time.Duration(h.BlinkMillis) * time.Millisecond
}

// ButtonPollInterval is how often the key switch pin is sampled.
func (h *Hardware) ButtonPollInterval() time.Duration {
	return time.Duration(h.ButtonPollMillis) * time.Millisecond
}

// AckHold is how long the confirmation text stays on screen.
func (d *Display) AckHold() time.Duration {
	return time.Duration(d.AckHoldMillis) * time.Millisecond
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// OpenAppLog opens the application event log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
