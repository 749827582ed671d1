package tenancy

// Config carries the tenancy settings loaded from the environment.
type Config struct {
	// PlatformOwnerEmails is the explicit allow-list of identities that
	// may hold platform-owner power. Comma-separated.
	PlatformOwnerEmails []string `env:"PLATFORM_OWNER_EMAILS" envSeparator:","`
}

// AllowList builds the platform-owner allow-list from the config.
func (c Config) AllowList() AllowList {
	return NewAllowList(c.PlatformOwnerEmails...)
}
