package types

import "time"

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile      string
	Profile         string
	EndpointURL     string
	Quick           bool
	Debug           bool
	ContinueOnError bool
	Timeout         time.Duration
	Verbose         int
}

// SessionConfig returns the part of the arguments needed to open an AWS session.
func (a *CLIArgs) SessionConfig() SessionConfig {
	return SessionConfig{
		Profile:     a.Profile,
		EndpointURL: a.EndpointURL,
	}
}

// ReportOptions returns the switches that drive collection and filtering.
func (a *CLIArgs) ReportOptions() ReportOptions {
	return ReportOptions{
		Quick:           a.Quick,
		Debug:           a.Debug,
		ContinueOnError: a.ContinueOnError,
		CallTimeout:     a.Timeout,
	}
}

// SessionConfig identifies the AWS credentials and endpoint to use.
type SessionConfig struct {
	// Profile is the shared config profile; empty means the SDK default chain.
	Profile string
	// EndpointURL overrides every service endpoint (LocalStack, tests).
	EndpointURL string
}

// ReportOptions controls which regions are queried and which rows are shown.
type ReportOptions struct {
	Quick           bool
	Debug           bool
	ContinueOnError bool
	// CallTimeout bounds each provider call; zero means no timeout.
	CallTimeout time.Duration
}
