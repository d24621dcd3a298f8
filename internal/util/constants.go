package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Scoring policy for section tests.
const (
	// PassScoreThreshold is the minimum score (0-100) for a PASSED test.
	PassScoreThreshold = 85
	// PointsPerScoreDivisor converts a test score into reward points:
	// points = round(score / PointsPerScoreDivisor).
	PointsPerScoreDivisor = 10
)

// Completion thresholds for course-level achievements.
const (
	CompletedCourseSections  = 3 // sections finished for a course to count as completed
	ReadyForNextLevelCourses = 3
	MarathonKnowledgeCourses = 5
)

const (
	MimeImage = "image/"
)
