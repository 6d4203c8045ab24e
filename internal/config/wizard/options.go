package wizard

import "github.com/charmbracelet/huh"

// RegionOption represents an AWS region.
type RegionOption struct {
	Value       string
	Label       string
	Description string
}

// Regions contains the regions commonly used for Transfer Family connectors.
var Regions = []RegionOption{
	{Value: "us-east-1", Label: "us-east-1", Description: "N. Virginia, USA"},
	{Value: "us-west-2", Label: "us-west-2", Description: "Oregon, USA"},
	{Value: "eu-west-1", Label: "eu-west-1", Description: "Ireland"},
	{Value: "eu-central-1", Label: "eu-central-1", Description: "Frankfurt, Germany"},
	{Value: "ap-southeast-1", Label: "ap-southeast-1", Description: "Singapore"},
	{Value: "ap-northeast-1", Label: "ap-northeast-1", Description: "Tokyo, Japan"},
}

// AttemptOptions contains probe attempt budgets for the bootstrap workflow.
var AttemptOptions = []huh.Option[int]{
	huh.NewOption("1 (Single probe, no retries)", 1),
	huh.NewOption("3 (Recommended)", 3),
	huh.NewOption("5 (Slow IAM propagation)", 5),
}

// RetryDelayOptions contains delays between probe attempts, in seconds.
var RetryDelayOptions = []huh.Option[int]{
	huh.NewOption("10s (Recommended)", 10),
	huh.NewOption("30s", 30),
	huh.NewOption("60s", 60),
}

// RegionsToOptions converts RegionOption slice to huh.Option slice.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Regions))
	for i, r := range Regions {
		opts[i] = huh.NewOption(r.Label+" - "+r.Description, r.Value)
	}
	return opts
}
