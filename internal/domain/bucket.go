package domain

// LoadBucket is a three-way classification of how many tasks reference a
// category or tag.
type LoadBucket string

// Load bucket values.
const (
	LoadBucketNone    LoadBucket = "none"
	LoadBucketFew     LoadBucket = "few"
	LoadBucketTooMany LoadBucket = "too_many"

	// LoadBucketUnknown is a defensive fallback. Counts come from non-negative
	// aggregations, so a negative count should be impossible.
	LoadBucketUnknown LoadBucket = "unknown"
)

// BucketForCount classifies a task count into a load bucket:
// 0 is none, 1 through 3 is few, and anything above 3 is too_many.
func BucketForCount(count int) LoadBucket {
	switch {
	case count == 0:
		return LoadBucketNone
	case count > 0 && count <= 3:
		return LoadBucketFew
	case count > 3:
		return LoadBucketTooMany
	}
	return LoadBucketUnknown
}
