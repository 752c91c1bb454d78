package model

// Request payloads for the write endpoints. Validate tags are enforced
// client-side before any request is issued.

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      Role   `json:"role" validate:"required,oneof=Student Instructor"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Seed     string `json:"seed" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"password" validate:"required"`
	NewPassword string `json:"password_new" validate:"required,min=8"`
}

type QuizPayload struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description"`
	GroupID          string `json:"group" validate:"required"`
	QuestionsCount   int    `json:"questions_number" validate:"required,min=1"`
	Difficulty       string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Type             string `json:"type" validate:"required"`
	Schedule         string `json:"schadule" validate:"required"`
	Duration         int    `json:"duration" validate:"required,min=1"`
	ScorePerQuestion int    `json:"score_per_question" validate:"required,min=1"`
	Category         string `json:"category"`
}

type QuestionPayload struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Options     Options   `json:"options" validate:"required"`
	Answer      AnswerKey `json:"answer" validate:"required,oneof=A B C D"`
	Difficulty  string    `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Type        string    `json:"type" validate:"required"`
}

type GroupPayload struct {
	Name     string   `json:"name" validate:"required"`
	Students []string `json:"students" validate:"required,min=1"`
}

type JoinRequest struct {
	Code string `json:"code" validate:"required"`
}

// Answer is one submitted answer during a quiz take.
type Answer struct {
	QuestionID string    `json:"question" validate:"required"`
	Answer     AnswerKey `json:"answer" validate:"required,oneof=A B C D"`
}

type SubmitRequest struct {
	Answers []Answer `json:"answers" validate:"required,min=1,dive"`
}

// JoinResult is the server acknowledgement of a join-by-code.
type JoinResult struct {
	Quiz Quiz `json:"quiz"`
}

// SubmitResult is the server acknowledgement of an answer submission.
type SubmitResult struct {
	Score float64 `json:"score"`
}
