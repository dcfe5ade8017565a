package config

type Telegram struct {
	ApiID       int    `env:"TG_API_ID,required"`
	ApiHash     string `env:"TG_API_HASH,required"`
	Phone       string `env:"TG_PHONE,required"`
	Password    string `env:"TG_PASSWORD"`
	SessionPath string `env:"TG_SESSION_PATH" envDefault:"storage/sessions/giftwatch.json"`

	DeviceModel   string `env:"TG_DEVICE_MODEL" envDefault:"PC 64bit"`
	SystemVersion string `env:"TG_SYSTEM_VERSION" envDefault:"4.14.186"`
	AppVersion    string `env:"TG_APP_VERSION" envDefault:"1.28.5"`
}
