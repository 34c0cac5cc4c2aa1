package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLeaveRequested  = "leave.requested"
	EventTypeLeaveDecided    = "leave.decided"
	EventTypeLeaveCancelled  = "leave.cancelled"
	EventTypeOvertimeClaimed = "overtime.claimed"
	EventTypeOvertimeDecided = "overtime.decided"
)

type LeaveRequestedEvent struct {
	BaseEvent
	LeaveID   int64   `json:"leave_id"`
	UserID    int64   `json:"user_id"`
	Status    string  `json:"status"`
	TotalDays float64 `json:"total_days"`
}

func NewLeaveRequestedEvent(leaveID, userID int64, status string, totalDays float64) *LeaveRequestedEvent {
	return &LeaveRequestedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveRequested,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_id":   leaveID,
				"user_id":    userID,
				"status":     status,
				"total_days": totalDays,
			},
		},
		LeaveID:   leaveID,
		UserID:    userID,
		Status:    status,
		TotalDays: totalDays,
	}
}

type LeaveDecidedEvent struct {
	BaseEvent
	LeaveID    int64  `json:"leave_id"`
	UserID     int64  `json:"user_id"`
	ApproverID int64  `json:"approver_id"`
	Status     string `json:"status"`
}

func NewLeaveDecidedEvent(leaveID, userID, approverID int64, status string) *LeaveDecidedEvent {
	return &LeaveDecidedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveDecided,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_id":    leaveID,
				"user_id":     userID,
				"approver_id": approverID,
				"status":      status,
			},
		},
		LeaveID:    leaveID,
		UserID:     userID,
		ApproverID: approverID,
		Status:     status,
	}
}

type LeaveCancelledEvent struct {
	BaseEvent
	LeaveID int64 `json:"leave_id"`
	UserID  int64 `json:"user_id"`
}

func NewLeaveCancelledEvent(leaveID, userID int64) *LeaveCancelledEvent {
	return &LeaveCancelledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveCancelled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_id": leaveID,
				"user_id":  userID,
			},
		},
		LeaveID: leaveID,
		UserID:  userID,
	}
}

type OvertimeClaimedEvent struct {
	BaseEvent
	ClaimID    int64   `json:"claim_id"`
	UserID     int64   `json:"user_id"`
	TotalHours float64 `json:"total_hours"`
}

func NewOvertimeClaimedEvent(claimID, userID int64, totalHours float64) *OvertimeClaimedEvent {
	return &OvertimeClaimedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOvertimeClaimed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"claim_id":    claimID,
				"user_id":     userID,
				"total_hours": totalHours,
			},
		},
		ClaimID:    claimID,
		UserID:     userID,
		TotalHours: totalHours,
	}
}

type OvertimeDecidedEvent struct {
	BaseEvent
	ClaimID    int64  `json:"claim_id"`
	UserID     int64  `json:"user_id"`
	ApproverID int64  `json:"approver_id"`
	Status     string `json:"status"`
}

func NewOvertimeDecidedEvent(claimID, userID, approverID int64, status string) *OvertimeDecidedEvent {
	return &OvertimeDecidedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOvertimeDecided,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"claim_id":    claimID,
				"user_id":     userID,
				"approver_id": approverID,
				"status":      status,
			},
		},
		ClaimID:    claimID,
		UserID:     userID,
		ApproverID: approverID,
		Status:     status,
	}
}
