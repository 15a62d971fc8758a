package attendance

type RecordLinkSentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	// SentAt is optional; when empty the server clock is used.
	SentAt string `json:"sent_at"`
}

type DeliveryEventResponse struct {
	ID        string `json:"id"`
	SchoolID  string `json:"school_id"`
	StudentID string `json:"student_id"`
	TeacherID string `json:"teacher_id"`
	SentAt    string `json:"sent_at"`
}

type ListEventsFilterRequest struct {
	TeacherID string `form:"teacher_id"`
	From      string `form:"from"`
	To        string `form:"to"`
}
