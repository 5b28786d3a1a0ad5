package awssts

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type CallerIdentity struct {
	Account, Arn, UserId string
}

// GetCallerIdentity fetches the identity of whatever AWS credentials are in
// the environment. It's the only AWS API call plancheck ever makes and it's
// read-only; the compliance check itself never leaves the local filesystem.
func GetCallerIdentity(ctx context.Context) (*CallerIdentity, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, err
	}
	return &CallerIdentity{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserId:  aws.ToString(out.UserId),
	}, nil
}
