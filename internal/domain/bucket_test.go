package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestBucketForCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
		want  domain.LoadBucket
	}{
		{"zero is none", 0, domain.LoadBucketNone},
		{"one is few", 1, domain.LoadBucketFew},
		{"three is few", 3, domain.LoadBucketFew},
		{"four is too many", 4, domain.LoadBucketTooMany},
		{"large is too many", 250, domain.LoadBucketTooMany},
		{"negative is unknown", -1, domain.LoadBucketUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, domain.BucketForCount(tc.count))
		})
	}
}
