package config

import "time"

type SecurityConfig interface {
	GetEnableRateLimiting() bool
	GetLoginRate() float64
	GetLoginBurst() int
	GetDeviceCookieMaxAge() time.Duration
	GetTrustProxyHeaders() bool
}

type Security struct {
	RateLimiting    bool          `env:"LOGIN_RATE_LIMITING" envDefault:"true"`
	LoginRate       float64       `env:"LOGIN_RATE" envDefault:"1"`
	LoginBurst      int           `env:"LOGIN_BURST" envDefault:"5"`
	DeviceCookieAge time.Duration `env:"DEVICE_COOKIE_MAX_AGE" envDefault:"8760h"`
	TrustProxy      bool          `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

var _ SecurityConfig = Security{}

func (s Security) GetEnableRateLimiting() bool {
	return s.RateLimiting
}

// GetLoginRate is the sustained number of login submissions per second
// allowed for a single device.
func (s Security) GetLoginRate() float64 {
	return s.LoginRate
}

func (s Security) GetLoginBurst() int {
	if s.LoginBurst < 1 {
		return 1
	}
	return s.LoginBurst
}

func (s Security) GetDeviceCookieMaxAge() time.Duration {
	return s.DeviceCookieAge
}

// GetTrustProxyHeaders reports whether X-Forwarded-For names the client.
// Only enable it behind a proxy that overwrites the header.
func (s Security) GetTrustProxyHeaders() bool {
	return s.TrustProxy
}
