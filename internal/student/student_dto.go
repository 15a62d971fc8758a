package student

type CreateStudentRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Package    string `json:"package" binding:"required"`
	DayPackage string `json:"day_package"`
	TimeSlot   string `json:"time_slot" binding:"required"`
	TeacherID  string `json:"teacher_id" binding:"required,uuid"`
}

type UpdateStudentRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Package    string `json:"package" binding:"required"`
	DayPackage string `json:"day_package"`
	TimeSlot   string `json:"time_slot" binding:"required"`
	Status     string `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

type ReassignStudentRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
}

type StudentResponse struct {
	ID         string `json:"id"`
	SchoolID   string `json:"school_id"`
	FullName   string `json:"full_name"`
	Package    string `json:"package"`
	DayPackage string `json:"day_package,omitempty"`
	TimeSlot   string `json:"time_slot"`
	TeacherID  string `json:"teacher_id"`
	Status     string `json:"status"`
}
