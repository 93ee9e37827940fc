package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/requestdata"
  "github.com/shyftcut/shyftcut-backend/internal/services"
)

type QuizHandler struct {
  quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
  return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) GradeAnswer(c *gin.Context) {
  var req struct {
    RoadmapID   string `json:"roadmap_id"`
    MilestoneID string `json:"milestone_id"`
    QuizID      string `json:"quiz_id"`
    QuestionID  string `json:"question_id"`
    Answer      string `json:"answer"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  roadmapID, err := uuid.Parse(req.RoadmapID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap_id"})
    return
  }
  userID := requestdata.UserID(c.Request.Context())
  record, err := qh.quizService.GradeAnswer(c.Request.Context(), userID, roadmapID, req.MilestoneID, req.QuizID, req.QuestionID, req.Answer)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, record)
}

func (qh *QuizHandler) Submit(c *gin.Context) {
  roadmapID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Answers      []services.AnswerSubmission `json:"answers"`
    TimeSpentSec int                         `json:"time_spent_sec"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := requestdata.UserID(c.Request.Context())
  result, err := qh.quizService.SubmitQuiz(c.Request.Context(), userID, roadmapID, c.Param("mid"), c.Param("qid"), req.Answers, req.TimeSpentSec)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, result)
}

func (qh *QuizHandler) ListResults(c *gin.Context) {
  roadmapID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  userID := requestdata.UserID(c.Request.Context())
  results, err := qh.quizService.ListResults(c.Request.Context(), userID, roadmapID, c.Param("qid"))
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"results": results})
}
