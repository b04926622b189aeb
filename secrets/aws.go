package secrets

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

type AWSConfig struct {
	Endpoint        string `yaml:"endpoint" mapstructure:"endpoint"`
	Region          string `yaml:"region" mapstructure:"region"`
	AccessKeyID     string `yaml:"accessKeyId" mapstructure:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey" mapstructure:"secretAccessKey"`
}

// newAWSSession uses the default credential chain unless static keys are
// configured.
func newAWSSession(cfg AWSConfig) (*session.Session, error) {
	awscfg := aws.NewConfig()

	if cfg.AccessKeyID != "" {
		awscfg = awscfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""))
	}

	if cfg.Endpoint != "" {
		awscfg = awscfg.WithEndpoint(cfg.Endpoint)
	}

	if cfg.Region != "" {
		awscfg = awscfg.WithRegion(cfg.Region)
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *awscfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}

	return sess, nil
}
