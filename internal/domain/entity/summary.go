package entity

// RegionSummary holds the resource counts found in one region and the derived score.
// A summary is built once, after all counts for the region are known.
type RegionSummary struct {
	Region string               `json:"region"`
	Counts map[ResourceKind]int `json:"counts"`
	Score  int                  `json:"score"`

	// Err is set when the region could not be queried and the run kept going.
	Err error `json:"-"`
}

// NewRegionSummary computes the score from counts and builds the region summary.
func NewRegionSummary(region string, counts map[ResourceKind]int) RegionSummary {
	copied := make(map[ResourceKind]int, len(counts))
	for k, v := range counts {
		copied[k] = v
	}
	return RegionSummary{
		Region: region,
		Counts: copied,
		Score:  Score(copied[ComputeInstance], copied[LoadBalancer], copied[ManagedDatabase]),
	}
}

// NewFailedSummary records a region whose counts are unavailable.
func NewFailedSummary(region string, err error) RegionSummary {
	return RegionSummary{
		Region: region,
		Counts: map[ResourceKind]int{},
		Err:    err,
	}
}

// Score returns 5*rds + 2*elb + 1*ec2. Negative counts (the unsupported
// sentinel) contribute nothing.
func Score(ec2Count, elbCount, rdsCount int) int {
	return 5*nonNegative(rdsCount) + 2*nonNegative(elbCount) + nonNegative(ec2Count)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Count returns the count recorded for kind, or UnsupportedCount when absent.
func (s RegionSummary) Count(kind ResourceKind) int {
	n, ok := s.Counts[kind]
	if !ok {
		return UnsupportedCount
	}
	return n
}

// Failed reports whether the region could not be queried.
func (s RegionSummary) Failed() bool {
	return s.Err != nil
}
