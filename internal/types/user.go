package types

import (
  "time"

  "github.com/google/uuid"
)

type SubscriptionRole string

const (
  RoleFree SubscriptionRole = "free"
  RolePro  SubscriptionRole = "pro"
  RoleTeam SubscriptionRole = "team"
)

// UserProfile is the root document at users/{id}.
type UserProfile struct {
  ID                     uuid.UUID        `json:"id"`
  Email                  string           `json:"email"`
  DisplayName            string           `json:"display_name"`
  PasswordHash           string           `json:"password_hash,omitempty"`
  SubscriptionRole       SubscriptionRole `json:"subscription_role"`
  TrialEndsAt            *time.Time       `json:"trial_ends_at,omitempty"`
  LastRoadmapGeneratedAt *time.Time       `json:"last_roadmap_generated_at,omitempty"`
  Preferences            *UserPreferences `json:"preferences,omitempty"`
  CreatedAt              time.Time        `json:"created_at"`
  UpdatedAt              time.Time        `json:"updated_at"`
}

// EffectiveRole treats an unexpired trial as pro.
func (u *UserProfile) EffectiveRole(now time.Time) SubscriptionRole {
  if u.SubscriptionRole == RoleFree && u.TrialEndsAt != nil && u.TrialEndsAt.After(now) {
    return RolePro
  }
  return u.SubscriptionRole
}

// PublicView strips credentials before the profile leaves the service.
func (u *UserProfile) PublicView() UserProfile {
  out := *u
  out.PasswordHash = ""
  return out
}

// UserPreferences is the wizard's answer set, embedded in the profile and
// echoed into every generation request.
type UserPreferences struct {
  CareerTrack        string   `json:"career_track"`
  ExperienceLevel    string   `json:"experience_level"`
  WeeklyHours        *int     `json:"weekly_hours"`
  LearningStyles     []string `json:"learning_styles"`
  ResourcePreference string   `json:"resource_preference"`
}

// Validate checks presence only. weekly_hours is not range-checked: a zero
// or negative value propagates into the generated hour totals.
func (p *UserPreferences) Validate() error {
  switch {
  case p == nil:
    return errMissingField("preferences")
  case p.CareerTrack == "":
    return errMissingField("career_track")
  case p.ExperienceLevel == "":
    return errMissingField("experience_level")
  case p.WeeklyHours == nil:
    return errMissingField("weekly_hours")
  case len(p.LearningStyles) == 0:
    return errMissingField("learning_styles")
  case p.ResourcePreference == "":
    return errMissingField("resource_preference")
  }
  return nil
}

type missingFieldError struct{ field string }

func (e missingFieldError) Error() string { return "missing required field: " + e.field }

func errMissingField(field string) error { return missingFieldError{field: field} }
