package models

// Board-scoped roles. An empty string means the member holds no role:
// they can read the board but never write or vote.
const (
	RoleAdmin   = "ADMIN"
	RoleAnalyst = "ANALYST"
	RolePartner = "PARTNER"
)

// Pipeline stages.
const (
	StageSourced   = "Sourced"
	StageScreen    = "Screen"
	StageDiligence = "Diligence"
	StageIC        = "IC"
	StageInvested  = "Invested"
	StagePassed    = "Passed"
)

// Deal statuses.
const (
	StatusActive   = "active"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// Vote values.
const (
	VoteApprove = "approve"
	VoteDecline = "decline"
)

var DealStages = []string{
	StageSourced,
	StageScreen,
	StageDiligence,
	StageIC,
	StageInvested,
	StagePassed,
}

// StageColors maps each stage to its default card color.
var StageColors = map[string]string{
	StageSourced:   "#10B981",
	StageScreen:    "#3B82F6",
	StageDiligence: "#F59E0B",
	StageIC:        "#8B5CF6",
	StageInvested:  "#059669",
	StagePassed:    "#6B7280",
}

const DefaultDealColor = "#3B82F6"

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAnalyst, RolePartner:
		return true
	}
	return false
}

func IsValidStage(stage string) bool {
	for _, s := range DealStages {
		if s == stage {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

func IsValidVote(vote string) bool {
	return vote == VoteApprove || vote == VoteDecline
}
