package models

// QueryRequest is the body of POST /api/query. Query is a pointer so request
// binding rejects a missing field while still accepting an empty string,
// which is a valid query.
type QueryRequest struct {
	Query     *string `json:"query" binding:"required"`
	SessionID string  `json:"session_id"`
}

// QueryResponse is the body of a successful POST /api/query. SessionID always
// equals the session the backend answered under, whether client-supplied or
// freshly created.
type QueryResponse struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	SessionID string   `json:"session_id"`
}

// CourseStats is the body of a successful GET /api/courses.
type CourseStats struct {
	TotalCourses int      `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}

// CourseAnalytics is what the RAG backend reports about the course catalog.
type CourseAnalytics struct {
	TotalCourses int
	CourseTitles []string
}

// Exchange is one question/answer turn in a session's history.
type Exchange struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// ErrorDetail is the error body for every non-2xx API response.
type ErrorDetail struct {
	Detail string `json:"detail"`
}
