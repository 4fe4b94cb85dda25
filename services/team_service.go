package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/match-predictor/models"
	"github.com/Dosada05/match-predictor/repositories"
	"github.com/Dosada05/match-predictor/storage"
)

// TeamService covers the admin operations on team rows: renaming and
// crest image management. Prediction logic never writes through here.
type TeamService interface {
	GetByID(ctx context.Context, teamID int) (*models.Team, error)
	Rename(ctx context.Context, teamID int, name string) (*models.Team, error)
	UploadCrest(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader // optional, nil disables crest uploads
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) GetByID(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}
	return team, nil
}

func (s *teamService) Rename(ctx context.Context, teamID int, name string) (*models.Team, error) {
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if err := s.teamRepo.UpdateName(ctx, teamID, name); err != nil {
		return nil, mapTeamRepoError(err)
	}
	return s.GetByID(ctx, teamID)
}

func (s *teamService) UploadCrest(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrCrestStorageDisabled
	}

	var ext string
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	default:
		return nil, ErrUnsupportedImage
	}

	// Make sure the team exists before touching object storage.
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, mapTeamRepoError(err)
	}

	key := fmt.Sprintf("crests/team_%d%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for team %d: %w", teamID, err)
	}

	if err := s.teamRepo.UpdateCrestURL(ctx, teamID, &result.Location); err != nil {
		return nil, mapTeamRepoError(err)
	}
	return s.GetByID(ctx, teamID)
}

func mapTeamRepoError(err error) error {
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return ErrTeamNotFound
	}
	return err
}
