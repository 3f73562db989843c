package entity

// RegionDescriptor identifies an AWS region and the metadata DescribeRegions returns.
// Endpoint and OptInStatus are informational only.
type RegionDescriptor struct {
	Name        string `json:"region_name"`
	Endpoint    string `json:"endpoint"`
	OptInStatus string `json:"opt_in_status"`
}

// OptInNotRequired is the opt-in status reported for the default-enabled regions.
const OptInNotRequired = "opt-in-not-required"

// RegionNames returns the identifiers of the given regions, preserving order.
func RegionNames(regions []RegionDescriptor) []string {
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.Name)
	}
	return names
}
