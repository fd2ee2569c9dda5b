package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/Riverafc7/esports-club-platform/repositories"
	"github.com/Riverafc7/esports-club-platform/storage"
)

type CreateTeamInput struct {
	Name     string            `json:"name"`
	Nickname string            `json:"nickname"`
	Role     models.PlayerRole `json:"role"`
	OpggLink *string           `json:"opgg_link"`
}

type JoinTeamInput struct {
	Code     string            `json:"code"`
	Nickname string            `json:"nickname"`
	Role     models.PlayerRole `json:"role"`
	OpggLink *string           `json:"opgg_link"`
}

type UpdatePlayerInput struct {
	UserID   int               `json:"user_id"`
	Nickname string            `json:"nickname"`
	Role     models.PlayerRole `json:"role"`
	OpggLink *string           `json:"opgg_link"`
}

type TeamService interface {
	Create(ctx context.Context, ownerID int, input CreateTeamInput) (*models.Team, error)
	Join(ctx context.Context, userID int, input JoinTeamInput) (*models.Team, error)
	Leave(ctx context.Context, userID int) error
	Delete(ctx context.Context, ownerID int) error
	UpdateName(ctx context.Context, ownerID int, name string) (*models.Team, error)
	UploadLogo(ctx context.Context, ownerID int, contentType string, file io.Reader) (*models.Team, error)
	UpdatePlayer(ctx context.Context, ownerID int, input UpdatePlayerInput) (*models.Team, error)
	RemovePlayer(ctx context.Context, ownerID, userID int) (*models.Team, error)
	MyTeam(ctx context.Context, userID int) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, userRepo repositories.UserRepository, uploader storage.FileUploader) TeamService {
	return &teamService{teamRepo: teamRepo, userRepo: userRepo, uploader: uploader}
}

func (s *teamService) Create(ctx context.Context, ownerID int, input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}
	if !models.ValidPlayerRole(input.Role) {
		return nil, ErrInvalidPlayerRole
	}
	if _, err := s.teamRepo.GetByUserID(ctx, ownerID); err == nil {
		return nil, ErrUserAlreadyInTeam
	} else if !errors.Is(err, repositories.ErrTeamNotFound) {
		return nil, fmt.Errorf("failed to check team membership: %w", err)
	}

	team := &models.Team{
		Name:      strings.TrimSpace(input.Name),
		Code:      generateJoinCode(),
		CreatedBy: ownerID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	// The creator joins their own roster immediately.
	player := &models.TeamPlayer{
		TeamID:   team.ID,
		UserID:   ownerID,
		Nickname: input.Nickname,
		Role:     input.Role,
		OpggLink: input.OpggLink,
	}
	if err := s.teamRepo.AddPlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to add owner to roster: %w", err)
	}

	return s.loadTeam(ctx, team.ID)
}

func (s *teamService) Join(ctx context.Context, userID int, input JoinTeamInput) (*models.Team, error) {
	if !models.ValidPlayerRole(input.Role) {
		return nil, ErrInvalidPlayerRole
	}
	if _, err := s.teamRepo.GetByUserID(ctx, userID); err == nil {
		return nil, ErrUserAlreadyInTeam
	} else if !errors.Is(err, repositories.ErrTeamNotFound) {
		return nil, fmt.Errorf("failed to check team membership: %w", err)
	}

	team, err := s.teamRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(input.Code)))
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrInvalidJoinCode
		}
		return nil, fmt.Errorf("failed to look up team code: %w", err)
	}

	players, err := s.teamRepo.ListPlayers(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if !models.CanAssignRole(players, userID, input.Role) {
		return nil, ErrRoleLimitExceeded
	}

	player := &models.TeamPlayer{
		TeamID:   team.ID,
		UserID:   userID,
		Nickname: input.Nickname,
		Role:     input.Role,
		OpggLink: input.OpggLink,
	}
	if err := s.teamRepo.AddPlayer(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerAlreadyAdded) {
			return nil, ErrUserAlreadyInTeam
		}
		return nil, fmt.Errorf("failed to join team: %w", err)
	}

	return s.loadTeam(ctx, team.ID)
}

func (s *teamService) Leave(ctx context.Context, userID int) error {
	team, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrUserNotInTeam
		}
		return fmt.Errorf("failed to find user's team: %w", err)
	}
	if team.CreatedBy == userID {
		return ErrOwnerCannotLeave
	}
	return s.teamRepo.RemovePlayer(ctx, team.ID, userID)
}

func (s *teamService) Delete(ctx context.Context, ownerID int) error {
	team, err := s.teamRepo.GetByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrUserNotInTeam
		}
		return fmt.Errorf("failed to find user's team: %w", err)
	}
	if team.CreatedBy != ownerID {
		return ErrOwnerActionForbidden
	}
	if team.LogoKey != nil {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return s.teamRepo.Delete(ctx, team.ID)
}

func (s *teamService) UpdateName(ctx context.Context, ownerID int, name string) (*models.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrTeamNameRequired
	}

	team, err := s.ownedTeam(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	team.Name = strings.TrimSpace(name)
	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return s.loadTeam(ctx, team.ID)
}

func (s *teamService) UploadLogo(ctx context.Context, ownerID int, contentType string, file io.Reader) (*models.Team, error) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, ErrUnsupportedImageType
	}

	team, err := s.ownedTeam(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	key := path.Join("uploads", "team-logos", fmt.Sprintf("%d%s", team.ID, ext))
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}
	if team.LogoKey != nil && *team.LogoKey != result.Key {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	team.LogoKey = &result.Key
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to save logo key: %w", err)
	}
	return s.loadTeam(ctx, team.ID)
}

func (s *teamService) UpdatePlayer(ctx context.Context, ownerID int, input UpdatePlayerInput) (*models.Team, error) {
	if !models.ValidPlayerRole(input.Role) {
		return nil, ErrInvalidPlayerRole
	}

	team, err := s.ownedTeam(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	players, err := s.teamRepo.ListPlayers(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if !models.CanAssignRole(players, input.UserID, input.Role) {
		return nil, ErrRoleLimitExceeded
	}

	player := &models.TeamPlayer{
		TeamID:   team.ID,
		UserID:   input.UserID,
		Nickname: input.Nickname,
		Role:     input.Role,
		OpggLink: input.OpggLink,
	}
	if err := s.teamRepo.UpdatePlayer(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return s.loadTeam(ctx, team.ID)
}

func (s *teamService) RemovePlayer(ctx context.Context, ownerID, userID int) (*models.Team, error) {
	team, err := s.ownedTeam(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if userID == team.CreatedBy {
		return nil, ErrOwnerCannotLeave
	}

	if err := s.teamRepo.RemovePlayer(ctx, team.ID, userID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to remove player: %w", err)
	}
	return s.loadTeam(ctx, team.ID)
}

func (s *teamService) MyTeam(ctx context.Context, userID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find user's team: %w", err)
	}
	return s.loadTeam(ctx, team.ID)
}

func (s *teamService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament teams: %w", err)
	}
	for i := range teams {
		s.populateLogoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) ownedTeam(ctx context.Context, ownerID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrUserNotInTeam
		}
		return nil, fmt.Errorf("failed to find user's team: %w", err)
	}
	if team.CreatedBy != ownerID {
		return nil, ErrOwnerActionForbidden
	}
	return team, nil
}

func (s *teamService) loadTeam(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload team %d: %w", teamID, err)
	}
	players, err := s.teamRepo.ListPlayers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	team.Players = players
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team.LogoKey != nil && *team.LogoKey != "" && s.uploader != nil {
		if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
			team.LogoURL = &url
		}
	}
}

const joinCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateJoinCode returns an 8-character code teammates type to join;
// ambiguous characters (0/O, 1/I) are excluded from the alphabet.
func generateJoinCode() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		for i := range b {
			b[i] = joinCodeCharset[i]
		}
		return string(b)
	}
	for i := range b {
		b[i] = joinCodeCharset[int(b[i])%len(joinCodeCharset)]
	}
	return string(b)
}
