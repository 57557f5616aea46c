package config

import "time"

const maxLoginDelay = 5 * time.Second

type PortalConfig interface {
	GetLoginDelay() time.Duration
	GetTokenSecret() []byte
	GetHonorReturnPath() bool
}

type Portal struct {
	LoginDelay      time.Duration `env:"LOGIN_DELAY" envDefault:"350ms"`
	TokenSecret     string        `env:"TOKEN_SECRET" envDefault:"graphene-trace-dev-secret"`
	HonorReturnPath bool          `env:"HONOR_RETURN_PATH" envDefault:"false"`
}

var _ PortalConfig = Portal{}

// GetLoginDelay returns the simulated round trip of a login attempt. It is
// never zero and never longer than five seconds.
func (p Portal) GetLoginDelay() time.Duration {
	switch {
	case p.LoginDelay <= 0:
		return time.Millisecond
	case p.LoginDelay > maxLoginDelay:
		return maxLoginDelay
	}
	return p.LoginDelay
}

func (p Portal) GetTokenSecret() []byte {
	return []byte(p.TokenSecret)
}

// GetHonorReturnPath reports whether a successful login should return the
// visitor to the page they were bounced from, when their role allows it.
func (p Portal) GetHonorReturnPath() bool {
	return p.HonorReturnPath
}
