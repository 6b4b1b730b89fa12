package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/khrees2412/proposly/pkg/models"
)

// Placeholders for the profile created alongside every user
const (
	DefaultProfileTitle = "New Freelancer"
	DefaultProfileTone  = "professional"
)

// User operations

// CreateUser inserts a user together with its placeholder profile
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.InTx(ctx, func(tx *Store) error {
		var email any
		if user.Email != "" {
			email = user.Email
		}
		result, err := tx.q.ExecContext(ctx, `INSERT INTO users (name, email) VALUES (?, ?)`, user.Name, email)
		if err != nil {
			return err
		}
		id, _ := result.LastInsertId()
		user.ID = int(id)

		_, err = tx.q.ExecContext(ctx, `INSERT INTO user_profiles (user_id, title, years_experience, default_tone)
			VALUES (?, ?, 0, ?)`, user.ID, DefaultProfileTitle, DefaultProfileTone)
		return err
	})
}

func (s *Store) GetUser(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, name, COALESCE(email, ''), created_at FROM users WHERE id=?`
	user := &models.User{}
	err := s.q.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, name, COALESCE(email, ''), created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Profile operations

// GetProfile returns the user's profile with its skills, or nil when missing
func (s *Store) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	query := `SELECT id, user_id, title, years_experience, default_tone, writing_style_notes, bio,
			  birthday, country, city, address, portfolio_site_link, github_link, linkedin_link, updated_at
			  FROM user_profiles WHERE user_id=?`
	p := &models.UserProfile{}
	err := s.q.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.Title, &p.YearsExperience,
		&p.DefaultTone, &p.WritingStyleNotes, &p.Bio, &p.Birthday, &p.Country, &p.City, &p.Address,
		&p.PortfolioURL, &p.GitHubURL, &p.LinkedInURL, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Skills, err = s.ListUserSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	query := `UPDATE user_profiles SET title=?, years_experience=?, default_tone=?, writing_style_notes=?,
			  bio=?, birthday=?, country=?, city=?, address=?, portfolio_site_link=?, github_link=?,
			  linkedin_link=?, updated_at=? WHERE user_id=?`
	result, err := s.q.ExecContext(ctx, query, p.Title, p.YearsExperience, p.DefaultTone, p.WritingStyleNotes,
		p.Bio, p.Birthday, p.Country, p.City, p.Address, p.PortfolioURL, p.GitHubURL, p.LinkedInURL,
		time.Now().UTC(), p.UserID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("no profile for user %d", p.UserID)
	}
	return nil
}

// Skill operations

// FindOrCreateSkill returns the catalog skill with the trimmed name, creating
// it when absent. Names are compared case-sensitively.
func (s *Store) FindOrCreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("skill name is empty")
	}

	skill := &models.Skill{}
	err := s.q.QueryRowContext(ctx, `SELECT id, name, active FROM skills WHERE name=?`, name).
		Scan(&skill.ID, &skill.Name, &skill.Active)
	if err == nil {
		return skill, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	result, err := s.q.ExecContext(ctx, `INSERT INTO skills (name, active) VALUES (?, 1)`, name)
	if err != nil {
		return nil, err
	}
	id, _ := result.LastInsertId()
	return &models.Skill{ID: int(id), Name: name, Active: true}, nil
}

// ListSkills returns the catalog ordered by name
func (s *Store) ListSkills(ctx context.Context, activeOnly bool) ([]*models.Skill, error) {
	query := `SELECT id, name, active FROM skills`
	if activeOnly {
		query += ` WHERE active=1`
	}
	query += ` ORDER BY name`

	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []*models.Skill{}
	for rows.Next() {
		skill := &models.Skill{}
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Active); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

// SetSkillActive toggles a catalog entry
func (s *Store) SetSkillActive(ctx context.Context, name string, active bool) error {
	result, err := s.q.ExecContext(ctx, `UPDATE skills SET active=? WHERE name=?`, active, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("skill %q not found", name)
	}
	return nil
}

// AddUserSkill links the named skill to the user, replacing the level of an existing link
func (s *Store) AddUserSkill(ctx context.Context, userID int, skillName, level string) (*models.UserSkill, error) {
	var us *models.UserSkill
	err := s.InTx(ctx, func(tx *Store) error {
		skill, err := tx.FindOrCreateSkill(ctx, skillName)
		if err != nil {
			return err
		}

		query := `INSERT INTO user_skills (user_id, skill_id, proficiency_level) VALUES (?, ?, ?)
				  ON CONFLICT(user_id, skill_id) DO UPDATE SET proficiency_level=excluded.proficiency_level`
		if _, err := tx.q.ExecContext(ctx, query, userID, skill.ID, level); err != nil {
			return err
		}

		us = &models.UserSkill{UserID: userID, SkillID: skill.ID, SkillName: skill.Name, ProficiencyLevel: level}
		return tx.q.QueryRowContext(ctx, `SELECT id FROM user_skills WHERE user_id=? AND skill_id=?`,
			userID, skill.ID).Scan(&us.ID)
	})
	return us, err
}

func (s *Store) ListUserSkills(ctx context.Context, userID int) ([]models.UserSkill, error) {
	query := `SELECT us.id, us.user_id, us.skill_id, s.name, us.proficiency_level
			  FROM user_skills us JOIN skills s ON s.id = us.skill_id
			  WHERE us.user_id=? ORDER BY us.id`
	rows, err := s.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []models.UserSkill{}
	for rows.Next() {
		var us models.UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.ProficiencyLevel); err != nil {
			return nil, err
		}
		skills = append(skills, us)
	}
	return skills, rows.Err()
}

// RemoveUserSkill unlinks the named skill, reporting whether a link existed
func (s *Store) RemoveUserSkill(ctx context.Context, userID int, skillName string) (bool, error) {
	query := `DELETE FROM user_skills WHERE user_id=? AND skill_id=(SELECT id FROM skills WHERE name=?)`
	result, err := s.q.ExecContext(ctx, query, userID, strings.TrimSpace(skillName))
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// Project operations

// CreateProject inserts a project with its skills (found or created by name)
// and integrations
func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	return s.InTx(ctx, func(tx *Store) error {
		query := `INSERT INTO projects (user_id, title, description, industry, challenges, outcome)
				  VALUES (?, ?, ?, ?, ?, ?)`
		result, err := tx.q.ExecContext(ctx, query, p.UserID, p.Title, p.Description, p.Industry, p.Challenges, p.Outcome)
		if err != nil {
			return err
		}
		id, _ := result.LastInsertId()
		p.ID = int(id)

		skills := make([]models.Skill, 0, len(p.Skills))
		for _, s := range p.Skills {
			skill, err := tx.FindOrCreateSkill(ctx, s.Name)
			if err != nil {
				return err
			}
			if _, err := tx.q.ExecContext(ctx, `INSERT OR IGNORE INTO project_skills (project_id, skill_id) VALUES (?, ?)`,
				p.ID, skill.ID); err != nil {
				return err
			}
			skills = append(skills, *skill)
		}
		p.Skills = skills

		for i := range p.Integrations {
			integ := &p.Integrations[i]
			result, err := tx.q.ExecContext(ctx, `INSERT INTO project_integrations (project_id, integration_name) VALUES (?, ?)`,
				p.ID, integ.Name)
			if err != nil {
				return err
			}
			iid, _ := result.LastInsertId()
			integ.ID = int(iid)
			integ.ProjectID = p.ID
		}
		return nil
	})
}

// ListProjects returns the user's projects in insertion order with skills and integrations
func (s *Store) ListProjects(ctx context.Context, userID int) ([]*models.Project, error) {
	query := `SELECT id, user_id, title, description, industry, challenges, outcome, created_at
			  FROM projects WHERE user_id=? ORDER BY id`
	rows, err := s.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	projects := []*models.Project{}
	byID := map[int]*models.Project{}
	for rows.Next() {
		p := &models.Project{Skills: []models.Skill{}, Integrations: []models.ProjectIntegration{}}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Industry,
			&p.Challenges, &p.Outcome, &p.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		projects = append(projects, p)
		byID[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return projects, nil
	}

	skillRows, err := s.q.QueryContext(ctx, `SELECT ps.project_id, s.id, s.name, s.active
		FROM project_skills ps JOIN skills s ON s.id = ps.skill_id
		JOIN projects p ON p.id = ps.project_id
		WHERE p.user_id=? ORDER BY ps.rowid`, userID)
	if err != nil {
		return nil, err
	}
	for skillRows.Next() {
		var projectID int
		var skill models.Skill
		if err := skillRows.Scan(&projectID, &skill.ID, &skill.Name, &skill.Active); err != nil {
			skillRows.Close()
			return nil, err
		}
		if p, ok := byID[projectID]; ok {
			p.Skills = append(p.Skills, skill)
		}
	}
	skillRows.Close()
	if err := skillRows.Err(); err != nil {
		return nil, err
	}

	integRows, err := s.q.QueryContext(ctx, `SELECT pi.id, pi.project_id, pi.integration_name
		FROM project_integrations pi JOIN projects p ON p.id = pi.project_id
		WHERE p.user_id=? ORDER BY pi.id`, userID)
	if err != nil {
		return nil, err
	}
	defer integRows.Close()
	for integRows.Next() {
		var integ models.ProjectIntegration
		if err := integRows.Scan(&integ.ID, &integ.ProjectID, &integ.Name); err != nil {
			return nil, err
		}
		if p, ok := byID[integ.ProjectID]; ok {
			p.Integrations = append(p.Integrations, integ)
		}
	}
	return projects, integRows.Err()
}

// DeleteProject removes a project owned by the user, reporting whether it existed
func (s *Store) DeleteProject(ctx context.Context, userID, projectID int) (bool, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM projects WHERE id=? AND user_id=?`, projectID, userID)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}
