package repos

import "github.com/shyftcut/shyftcut-backend/internal/docstore"

// Document layout:
//
//   users/{userId}
//   tracks/{userId}/roadmaps/{roadmapId}
//   tracks/{userId}/roadmaps/{roadmapId}/milestones/{milestoneId}
//   tracks/{userId}/roadmaps/{roadmapId}/quizResults/{resultId}
//   publicRoadmaps/{roadmapId}
//   publicRoadmaps/{roadmapId}/milestones/{milestoneId}

const (
  UsersCollection          = "users"
  PublicRoadmapsCollection = "publicRoadmaps"
)

func UserPath(userID string) string {
  return docstore.JoinPath(UsersCollection, userID)
}

func RoadmapsCollection(userID string) string {
  return docstore.JoinPath("tracks", userID, "roadmaps")
}

func RoadmapPath(userID, roadmapID string) string {
  return docstore.JoinPath(RoadmapsCollection(userID), roadmapID)
}

func MilestonesCollection(userID, roadmapID string) string {
  return docstore.JoinPath(RoadmapPath(userID, roadmapID), "milestones")
}

func MilestonePath(userID, roadmapID, milestoneID string) string {
  return docstore.JoinPath(MilestonesCollection(userID, roadmapID), milestoneID)
}

func QuizResultsCollection(userID, roadmapID string) string {
  return docstore.JoinPath(RoadmapPath(userID, roadmapID), "quizResults")
}

func QuizResultPath(userID, roadmapID, resultID string) string {
  return docstore.JoinPath(QuizResultsCollection(userID, roadmapID), resultID)
}

func PublicRoadmapPath(roadmapID string) string {
  return docstore.JoinPath(PublicRoadmapsCollection, roadmapID)
}

func PublicMilestonesCollection(roadmapID string) string {
  return docstore.JoinPath(PublicRoadmapPath(roadmapID), "milestones")
}

func PublicMilestonePath(roadmapID, milestoneID string) string {
  return docstore.JoinPath(PublicMilestonesCollection(roadmapID), milestoneID)
}
