// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/tfctl/resfilter/internal/aws"
)

// S3 keeps a snapshot in an S3 object.
type S3 struct {
	API      aws.ObjectAPI
	Location aws.Location
}

// Load reads the snapshot object.
func (s *S3) Load(ctx context.Context) ([]byte, error) {
	return aws.GetObject(ctx, s.API, s.Location)
}

// Save writes the snapshot object.
func (s *S3) Save(ctx context.Context, data []byte) error {
	return aws.PutObject(ctx, s.API, s.Location, data)
}

func (s *S3) String() string {
	return s.Location.String()
}
