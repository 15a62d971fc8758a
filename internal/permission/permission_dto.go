package permission

type SubmitRequestRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

type ReviewRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED DECLINED"`
}

type CreateWaiverRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	Reason    string `json:"reason"`
}

type PermissionRequestResponse struct {
	ID         string  `json:"id"`
	SchoolID   string  `json:"school_id"`
	TeacherID  string  `json:"teacher_id"`
	Date       string  `json:"date"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
	ReviewedAt *string `json:"reviewed_at,omitempty"`
}

type WaiverResponse struct {
	ID        string `json:"id"`
	SchoolID  string `json:"school_id"`
	TeacherID string `json:"teacher_id"`
	Date      string `json:"date"`
	AdminID   string `json:"admin_id"`
	Reason    string `json:"reason,omitempty"`
}
