package types

// Config represents the application configuration that can be loaded from a file.
// Nil fields were not present in the file and leave the flag defaults alone.
type Config struct {
	Profile         *string `json:"profile" yaml:"profile" toml:"profile"`
	EndpointURL     *string `json:"endpoint_url" yaml:"endpoint_url" toml:"endpoint_url"`
	Quick           *bool   `json:"quick" yaml:"quick" toml:"quick"`
	Debug           *bool   `json:"debug" yaml:"debug" toml:"debug"`
	ContinueOnError *bool   `json:"continue_on_error" yaml:"continue_on_error" toml:"continue_on_error"`
	Timeout         *string `json:"timeout" yaml:"timeout" toml:"timeout"`
	Verbose         *int    `json:"verbose" yaml:"verbose" toml:"verbose"`
}

// Values flattens the fields present in the file into flag-named keys.
func (c *Config) Values() map[string]interface{} {
	values := make(map[string]interface{})
	if c.Profile != nil {
		values["profile"] = *c.Profile
	}
	if c.EndpointURL != nil {
		values["endpoint-url"] = *c.EndpointURL
	}
	if c.Quick != nil {
		values["quick"] = *c.Quick
	}
	if c.Debug != nil {
		values["debug"] = *c.Debug
	}
	if c.ContinueOnError != nil {
		values["continue-on-error"] = *c.ContinueOnError
	}
	if c.Timeout != nil {
		values["timeout"] = *c.Timeout
	}
	if c.Verbose != nil {
		values["verbose"] = *c.Verbose
	}
	return values
}
