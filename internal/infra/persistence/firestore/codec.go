package firestore

import (
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// asTime decodes a timestamp written either natively or as epoch milliseconds.
func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case int64:
		return time.UnixMilli(t).UTC()
	case float64:
		return time.UnixMilli(int64(t)).UTC()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}
		}

		return parsed
	default:
		return time.Time{}
	}
}

// countResult reads the "all" alias of a count aggregation.
func countResult(result firestore.AggregationResult) int64 {
	value, ok := result["all"].(*firestorepb.Value)
	if !ok {
		return 0
	}

	return value.GetIntegerValue()
}
