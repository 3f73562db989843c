package types

import "errors"

var (
	ErrCredentials       = errors.New("unable to authenticate with AWS. Check the profile and credentials")
	ErrRegionQuery       = errors.New("failed to query AWS region")
	ErrUnsupportedConfig = errors.New("unsupported config file format")
)
