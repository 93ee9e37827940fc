package services

import (
  _ "embed"
  "strings"
  "text/template"
)

//go:embed prompts/roadmap.md
var roadmapPromptRaw string

// roadmapPromptTemplate is parsed once at package init and reused on every
// generation call.
var roadmapPromptTemplate = template.Must(template.New("roadmap").Parse(roadmapPromptRaw))

const roadmapSystemPrompt = "You are a career-learning planner. You design practical, week-by-week learning roadmaps built from real online resources."

type roadmapPromptInput struct {
  CareerTrack        string
  ExperienceLevel    string
  WeeklyHours        int
  LearningStyles     string
  ResourcePreference string
  TotalHours         int
  DurationHours      int
}

func buildRoadmapPrompt(in roadmapPromptInput) (string, error) {
  var b strings.Builder
  if err := roadmapPromptTemplate.Execute(&b, in); err != nil {
    return "", err
  }
  return b.String(), nil
}
