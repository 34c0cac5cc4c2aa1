package dashboard

// Stats is a point-in-time snapshot computed from current state; nothing
// here is persisted.
type Stats struct {
	TotalEmployees  int64 `json:"total_employees"`
	PendingLeaves   int64 `json:"pending_leaves"`
	PendingOvertime int64 `json:"pending_overtime"`
	OnLeaveToday    int64 `json:"on_leave_today"`
}
