package dashboard

import "github.com/rohinisinghsenger-max/hrms-portal/internal/employee"

type StatsResponse struct {
	TotalEmployees      int64                      `json:"total_employees"`
	TotalDepartments    int64                      `json:"total_departments"`
	PresentToday        int64                      `json:"present_today"`
	AbsentToday         int64                      `json:"absent_today"`
	LateToday           int64                      `json:"late_today"`
	AttendanceRateToday float64                    `json:"attendance_rate_today"`
	AttendanceThisWeek  int64                      `json:"attendance_this_week"`
	RecentEmployees     []employee.EmployeeResponse `json:"recent_employees"`
}
