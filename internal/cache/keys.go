package cache

import "fmt"

// ExamStatisticsKey is where the statistics summary of an exam is cached
func ExamStatisticsKey(examID uint) string {
	return fmt.Sprintf("exam:%d:statistics", examID)
}

// ExamKeysPattern matches every cached entry belonging to an exam
func ExamKeysPattern(examID uint) string {
	return fmt.Sprintf("exam:%d:*", examID)
}

// AuthorizationKey is where a token's verdict for one role is cached.
// tokenDigest must already be hashed; raw tokens never become keys.
func AuthorizationKey(tokenDigest string, role int) string {
	return fmt.Sprintf("authz:%s:%d", tokenDigest, role)
}
