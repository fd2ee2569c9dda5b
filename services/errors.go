package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidJoinCode    = errors.New("invalid team code")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrInvalidPlayerRole  = errors.New("invalid player role")
	ErrRoleLimitExceeded  = errors.New("role limit exceeded for this team")
	ErrUserAlreadyInTeam  = errors.New("user is already in a team")
	ErrUserNotInTeam      = errors.New("user does not belong to a team")
	ErrNotEnoughTeams     = errors.New("not enough registered teams to generate a schedule")

	// Registration gate: closed tournaments reject new teams. The message is
	// surfaced to the client unchanged.
	ErrTournamentClosed = errors.New("tournament registration is closed")

	// Conflicts
	ErrEmailTaken           = errors.New("email address is already in use")
	ErrUsernameTaken        = errors.New("username is already in use")
	ErrTeamNameTaken        = errors.New("team name is already in use")
	ErrAlreadyRegistered    = errors.New("team is already registered for this tournament")
	ErrTournamentNameTaken  = errors.New("tournament name already exists")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrOwnerActionForbidden = errors.New("only the team owner can perform this action")
	ErrOwnerCannotLeave     = errors.New("the team owner cannot leave the team, delete it instead")

	// Entity lookups
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrNotRegistered      = errors.New("team is not registered for this tournament")
)
