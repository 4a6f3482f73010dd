package models

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrCharityNotFound    = errors.New("charity not found")
	ErrInvitationNotFound = errors.New("invitation not found")

	ErrInvalidDuration = errors.New("duration must be a positive number of days")
	ErrInvalidPenalty  = errors.New("penalty amount must be positive")
	ErrWitnessIsOwner  = errors.New("challenge owner cannot be a witness")

	ErrNotAuthorized       = errors.New("not authorized for this challenge")
	ErrSettlementNotDue    = errors.New("penalty total is below the settlement threshold")
	ErrInvitationResolved  = errors.New("invitation already resolved")
	ErrIdentityUnavailable = errors.New("identity resolution unavailable")
)
