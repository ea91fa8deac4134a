package dashboard

// StatsResponse is returned by GET /dashboard/stats
type StatsResponse struct {
	TotalEmployees  int64  `json:"totalEmployees"`
	ActiveEmployees int64  `json:"activeEmployees"`
	PresentToday    int64  `json:"presentToday"`
	LateToday       int64  `json:"lateToday"`
	OnLeaveToday    int64  `json:"onLeaveToday"`
	AbsentToday     int64  `json:"absentToday"` // active - present - late - onLeave, may be negative
	PendingLeaves   int64  `json:"pendingLeaves"`
	PendingMembers  int64  `json:"pendingMembers"`
	Date            string `json:"date"`
}
