package utils

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ToTime(value interface{}) time.Time {
	switch v := value.(type) {
	case primitive.DateTime:
		return v.Time()
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0)
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	default:
	}
	return time.Time{}
}

func ToInt(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func Contains[T int | string](data []T, value T) bool {
	for _, v := range data {
		if v == value {
			return true
		}
	}
	return false
}

func ToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	default:
		return ""
	}
	return ""
}

// ToIntSlice mongo 读出的数组可能是 primitive.A，元素可能是 int32/int64
func ToIntSlice(value interface{}) []int {
	switch v := value.(type) {
	case primitive.A:
		return ToIntSlice([]interface{}(v))
	case []interface{}:
		result := make([]int, len(v))
		for i, item := range v {
			result[i] = ToInt(item)
		}
		return result
	case []int:
		return v
	case []int32:
		result := make([]int, len(v))
		for i, item := range v {
			result[i] = int(item)
		}
		return result
	default:
		return []int{}
	}
}

func ToStringArray(value interface{}) []string {
	switch v := value.(type) {
	case primitive.A:
		return ToStringArray([]interface{}(v))
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			result[i] = ToString(item)
		}
		return result
	case []string:
		return v
	default:
		return []string{}
	}
}
