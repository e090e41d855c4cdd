package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/repository"
)

var (
	ErrSkillNameRequired = errors.New("skill name is required")
	ErrSkillExists       = errors.New("skill already exists")
	ErrUnknownSkill      = errors.New("one or more skills do not exist")
)

// SkillService manages the skill catalogue
type SkillService struct {
	skillRepo repository.SkillRepository
}

func NewSkillService(skillRepo repository.SkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

// CreateSkill adds a skill; names are unique case-insensitively
func (s *SkillService) CreateSkill(name string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSkillNameRequired
	}

	skills, err := s.skillRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	if lo.ContainsBy(skills, func(existing models.Skill) bool {
		return strings.EqualFold(existing.Name, name)
	}) {
		return nil, ErrSkillExists
	}

	skill := &models.Skill{Name: name}
	if err := s.skillRepo.Create(skill); err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return skill, nil
}

func (s *SkillService) ListSkills() ([]models.Skill, error) {
	skills, err := s.skillRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

// ensureSkillsExist returns the deduplicated IDs or ErrUnknownSkill
func ensureSkillsExist(repo repository.SkillRepository, ids []uint64) ([]uint64, error) {
	unique := lo.Uniq(ids)
	if len(unique) == 0 {
		return unique, nil
	}
	count, err := repo.CountByIDs(unique)
	if err != nil {
		return nil, fmt.Errorf("failed to verify skills: %w", err)
	}
	if int(count) != len(unique) {
		return nil, ErrUnknownSkill
	}
	return unique, nil
}
