package entity

// ResourceKind is one of the resource types counted per region.
type ResourceKind string

const (
	ComputeInstance ResourceKind = "ec2"
	ManagedDatabase ResourceKind = "rds"
	LoadBalancer    ResourceKind = "elbv2"
)

// UnsupportedCount is returned in place of a count for a kind with no counting rule.
const UnsupportedCount = -1

// ResourceKinds lists every supported kind in query order.
func ResourceKinds() []ResourceKind {
	return []ResourceKind{ComputeInstance, ManagedDatabase, LoadBalancer}
}

// Valid reports whether k has a counting rule.
func (k ResourceKind) Valid() bool {
	switch k {
	case ComputeInstance, ManagedDatabase, LoadBalancer:
		return true
	}
	return false
}

// Weight is the contribution of a single resource of this kind to a region score.
func (k ResourceKind) Weight() int {
	switch k {
	case ManagedDatabase:
		return 5
	case LoadBalancer:
		return 2
	case ComputeInstance:
		return 1
	}
	return 0
}

// ParseResourceKind converts a kind name ("ec2", "rds", "elbv2") to a ResourceKind.
func ParseResourceKind(s string) (ResourceKind, bool) {
	k := ResourceKind(s)
	return k, k.Valid()
}

func (k ResourceKind) String() string {
	return string(k)
}
