package usecase

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/diillson/aws-which-region/internal/domain/entity"
	"github.com/diillson/aws-which-region/internal/domain/repository"
	"github.com/diillson/aws-which-region/internal/shared/types"
)

// RegionUseCase handles the region activity report.
type RegionUseCase struct {
	connector   repository.AWSConnector
	console     types.ConsoleInterface
	log         logr.Logger
	onConnected func()
}

// NewRegionUseCase creates a new region report use case.
func NewRegionUseCase(
	connector repository.AWSConnector,
	console types.ConsoleInterface,
	log logr.Logger,
) *RegionUseCase {
	return &RegionUseCase{
		connector: connector,
		console:   console,
		log:       log,
	}
}

// SetLogger replaces the diagnostic logger.
func (uc *RegionUseCase) SetLogger(log logr.Logger) {
	uc.log = log
}

// SetOnConnected registers fn to run once the session is authenticated,
// before any region output. A failed Connect never calls it.
func (uc *RegionUseCase) SetOnConnected(fn func()) {
	uc.onConnected = fn
}

// RunReport runs the whole pipeline: session, regions, counts, filter, sort
// and table. Nothing is printed to the table output unless every region was
// collected.
func (uc *RegionUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	opts := args.ReportOptions()
	uc.log.V(1).Info("starting region report", "options", describeOptions(opts))

	awsRepo, err := uc.connector.Connect(ctx, args.SessionConfig())
	if err != nil {
		return err
	}
	if uc.onConnected != nil {
		uc.onConnected()
	}
	if accountID, err := awsRepo.GetAccountID(ctx); err == nil {
		uc.log.Info("authenticated", "account", accountID, "profile", args.Profile)
	}

	regions, err := uc.resolveRegions(ctx, awsRepo, opts)
	if err != nil {
		return err
	}

	progress := uc.console.ProgressWithTotal(len(regions))
	summaries, err := CollectSummaries(ctx, uc.log, regions, awsRepo, opts, func(s entity.RegionSummary) {
		if s.Failed() {
			uc.console.LogWarning("Region %s could not be queried: %s", s.Region, s.Err)
		}
		progress.Increment()
	})
	progress.Stop()
	if err != nil {
		return err
	}

	report := SortSummaries(FilterSummaries(summaries, opts))
	uc.console.Print(RenderReport(uc.console.CreateTable(), report))
	return nil
}

// resolveRegions picks the region list and prints the mode messages.
func (uc *RegionUseCase) resolveRegions(ctx context.Context, lister RegionLister, opts types.ReportOptions) ([]entity.RegionDescriptor, error) {
	if opts.Quick {
		regions := QuickRegions()
		uc.console.LogInfo("Quick mode, querying only the following regions:")
		uc.console.LogInfo("%s.", joinRegionNames(regions))
		uc.console.LogInfo("Unset option --quick to query all AWS regions for resource counts. (slow!)")
		uc.console.LogInfo("Querying %d regions, please wait...", len(regions))
		return regions, nil
	}

	uc.console.LogWarning("Default option set, querying ALL AWS regions for resource counts. (Slow!)")
	uc.console.LogInfo("Use option --quick to query selected US and EU regions only.")

	status := uc.console.Status("Listing AWS regions...")
	regions, err := ResolveRegions(ctx, lister, false)
	status.Stop()
	if err != nil {
		return nil, err
	}

	uc.console.LogInfo("Found %d AWS regions.", len(regions))
	uc.console.LogInfo("Querying, please wait...")
	return regions, nil
}

func describeOptions(opts types.ReportOptions) string {
	return fmt.Sprintf("quick=%t debug=%t continue-on-error=%t timeout=%s", opts.Quick, opts.Debug, opts.ContinueOnError, opts.CallTimeout)
}
