package aws

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/diillson/aws-which-region/internal/domain/entity"
	"github.com/diillson/aws-which-region/internal/domain/repository"
	"github.com/diillson/aws-which-region/internal/shared/types"
)

// controlRegion is where region-independent calls (DescribeRegions, STS) are made.
const controlRegion = "us-east-1"

// Connector opens AWS sessions from the shared config profile.
type Connector struct {
	// loadOptions are appended to the defaults; tests use them to inject credentials.
	loadOptions []func(*config.LoadOptions) error
}

// NewConnector creates a new Connector.
func NewConnector(loadOptions ...func(*config.LoadOptions) error) repository.AWSConnector {
	return &Connector{loadOptions: loadOptions}
}

// Connect loads the SDK config and validates the credentials with STS.
// Retries are disabled: every API call is made exactly once.
func (c *Connector) Connect(ctx context.Context, session types.SessionConfig) (repository.AWSRepository, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(controlRegion),
		config.WithRetryMaxAttempts(1),
	}
	if session.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(session.Profile))
	}
	opts = append(opts, c.loadOptions...)

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config for profile %q: %v", types.ErrCredentials, session.Profile, err)
	}
	if session.EndpointURL != "" {
		cfg.BaseEndpoint = aws.String(session.EndpointURL)
	}

	repo := NewAWSRepositoryFromConfig(cfg)
	if _, err := repo.GetAccountID(ctx); err != nil {
		if !errors.Is(err, types.ErrCredentials) {
			err = fmt.Errorf("%w: %w", types.ErrCredentials, err)
		}
		return nil, err
	}
	return repo, nil
}

// AWSRepositoryImpl implements AWSRepository with a per-region client cache.
type AWSRepositoryImpl struct {
	cfg         aws.Config
	clientCache map[string]interface{}
	accountID   string
	mu          sync.Mutex
}

// NewAWSRepositoryFromConfig wraps an already-loaded SDK config.
func NewAWSRepositoryFromConfig(cfg aws.Config) *AWSRepositoryImpl {
	return &AWSRepositoryImpl{
		cfg:         cfg,
		clientCache: make(map[string]interface{}),
	}
}

func (r *AWSRepositoryImpl) getServiceClient(region, service string) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s-%s", region, service)

	r.mu.Lock()
	defer r.mu.Unlock()
	if client, ok := r.clientCache[cacheKey]; ok {
		return client, nil
	}

	regionalCfg := r.cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "ec2":
		client = ec2.NewFromConfig(regionalCfg)
	case "rds":
		client = rds.NewFromConfig(regionalCfg)
	case "elbv2":
		client = elasticloadbalancingv2.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.clientCache[cacheKey] = client
	return client, nil
}

// GetAccountID returns the account behind the session credentials.
func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	r.mu.Lock()
	cached := r.accountID
	r.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	client, err := r.getServiceClient(controlRegion, "sts")
	if err != nil {
		return "", err
	}
	stsClient := client.(*sts.Client)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", wrapAPIError(types.ErrCredentials, "error getting caller identity", err)
	}

	account := aws.ToString(result.Account)
	r.mu.Lock()
	r.accountID = account
	r.mu.Unlock()
	return account, nil
}

// GetAllRegions returns the regions enabled for the account, in API order.
func (r *AWSRepositoryImpl) GetAllRegions(ctx context.Context) ([]entity.RegionDescriptor, error) {
	client, err := r.getServiceClient(controlRegion, "ec2")
	if err != nil {
		return nil, err
	}
	ec2Client := client.(*ec2.Client)

	regionsOutput, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, wrapAPIError(types.ErrRegionQuery, "error describing regions", err)
	}

	regions := make([]entity.RegionDescriptor, 0, len(regionsOutput.Regions))
	for _, region := range regionsOutput.Regions {
		regions = append(regions, entity.RegionDescriptor{
			Name:        aws.ToString(region.RegionName),
			Endpoint:    aws.ToString(region.Endpoint),
			OptInStatus: aws.ToString(region.OptInStatus),
		})
	}
	return regions, nil
}

// CountResources issues a single describe call for kind in region. Only the
// first response page is counted.
func (r *AWSRepositoryImpl) CountResources(ctx context.Context, region string, kind entity.ResourceKind) (int, error) {
	if !kind.Valid() {
		return entity.UnsupportedCount, nil
	}

	client, err := r.getServiceClient(region, string(kind))
	if err != nil {
		return 0, err
	}

	var count int
	switch kind {
	case entity.ComputeInstance:
		count, err = countRunningReservations(ctx, client.(*ec2.Client))
	case entity.ManagedDatabase:
		count, err = countDBInstances(ctx, client.(*rds.Client))
	case entity.LoadBalancer:
		count, err = countLoadBalancers(ctx, client.(*elasticloadbalancingv2.Client))
	}
	if err != nil {
		return 0, wrapAPIError(types.ErrRegionQuery, fmt.Sprintf("%s (%s)", region, kind), err)
	}
	return count, nil
}

// countRunningReservations counts reservation groups, not instances: a
// reservation holding several running instances counts once.
func countRunningReservations(ctx context.Context, client *ec2.Client) (int, error) {
	output, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []ec2Types.Filter{
			{Name: aws.String("instance-state-name"), Values: []string{"running"}},
		},
	})
	if err != nil {
		return 0, err
	}
	return len(output.Reservations), nil
}

func countDBInstances(ctx context.Context, client *rds.Client) (int, error) {
	output, err := client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		return 0, err
	}
	return len(output.DBInstances), nil
}

func countLoadBalancers(ctx context.Context, client *elasticloadbalancingv2.Client) (int, error) {
	output, err := client.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{})
	if err != nil {
		return 0, err
	}
	return len(output.LoadBalancers), nil
}

// credentialErrorCodes are API error codes meaning the session itself is unusable.
var credentialErrorCodes = map[string]bool{
	"AuthFailure":                 true,
	"ExpiredToken":                true,
	"ExpiredTokenException":       true,
	"InvalidClientTokenId":        true,
	"SignatureDoesNotMatch":       true,
	"UnrecognizedClientException": true,
}

// wrapAPIError attaches sentinel to the SDK error. Credential failures are
// reported as types.ErrCredentials whatever call produced them.
func wrapAPIError(sentinel error, what string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && credentialErrorCodes[apiErr.ErrorCode()] {
		sentinel = types.ErrCredentials
	}
	return fmt.Errorf("%w: %s: %w", sentinel, what, err)
}
