package model

import "fmt"

// Stage is where a candidate sits in a company's hiring pipeline.
//
//	pending ──► reviewing ──► interview ──► offer ──► hired
//	   │            │             │           │
//	   └────────────┴─────────────┴───────────┴──► rejected
//
// hired and rejected accept no further moves.
type Stage string

const (
	StagePending   Stage = "pending"
	StageReviewing Stage = "reviewing"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
)

// stageOrder is the forward path; rejected is reachable from any entry but the last.
var stageOrder = []Stage{StagePending, StageReviewing, StageInterview, StageOffer, StageHired}

// ParseStage converts a raw string to a Stage. Values are lower-case and exact.
func ParseStage(s string) (Stage, error) {
	st := Stage(s)
	switch st {
	case StagePending, StageReviewing, StageInterview, StageOffer, StageHired, StageRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application stage %q", s)
}

// Terminal reports whether no move is allowed out of s.
func (s Stage) Terminal() bool { return s == StageHired || s == StageRejected }

// CanAdvance reports whether an application may move from → to.
// Only single forward steps and rejections from non-terminal stages are allowed.
func CanAdvance(from, to Stage) bool {
	if from.Terminal() {
		return false
	}
	if to == StageRejected {
		return true
	}
	for i := 0; i < len(stageOrder)-1; i++ {
		if stageOrder[i] == from {
			return stageOrder[i+1] == to
		}
	}
	return false
}
