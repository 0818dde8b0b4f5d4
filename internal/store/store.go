// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tfctl/resfilter/internal/aws"
	"github.com/tfctl/resfilter/internal/config"
	"github.com/tfctl/resfilter/internal/log"
)

// Store abstracts where a request snapshot lives.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	String() string
}

// newObjectAPI builds the S3 client. Tests replace it.
var newObjectAPI = func(ctx context.Context) (aws.ObjectAPI, error) {
	profile, _ := config.GetString("s3.profile", "")
	region, _ := config.GetString("s3.region", "")
	endpoint, _ := config.GetString("s3.endpoint", "")

	cfg, err := aws.LoadAWSConfig(ctx, aws.WithProfile(profile), aws.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	if endpoint != "" {
		return aws.NewS3(cfg, aws.WithS3Endpoint(endpoint)), nil
	}
	return aws.NewS3(cfg), nil
}

// New returns the Store for location. An s3:// URL selects S3, anything else
// is a local file path.
func New(ctx context.Context, location string) (Store, error) {
	if location == "" {
		return nil, errors.New("empty snapshot location")
	}

	if !aws.IsS3URL(location) {
		log.Debugf("local store: %s", location)
		return NewLocal(location)
	}

	loc, err := aws.ParseS3URL(location)
	if err != nil {
		return nil, err
	}
	api, err := newObjectAPI(ctx)
	if err != nil {
		return nil, err
	}
	log.Debugf("s3 store: %s", loc)
	return &S3{API: api, Location: loc}, nil
}
