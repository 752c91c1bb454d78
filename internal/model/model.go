// Package model defines the client-side data model for the quiz API.
// Wire field names follow the server (snake_case, Mongo-style _id);
// the types here are what every other package consumes.
package model

import "time"

// Role is a user role.
type Role string

const (
	RoleStudent    Role = "Student"
	RoleInstructor Role = "Instructor"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor
}

// Profile identifies the logged-in user.
type Profile struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Credential is the bearer credential issued on login or register.
// It is the only durably persisted record.
type Credential struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken,omitempty"`
	Profile      Profile `json:"profile"`
}

// Valid reports whether the credential can authenticate requests:
// a non-empty token and a known role.
func (c *Credential) Valid() bool {
	return c != nil && c.AccessToken != "" && c.Profile.Role.Valid()
}

// QuizStatus is the lifecycle state of a quiz.
type QuizStatus string

const (
	QuizDraft     QuizStatus = "draft"
	QuizPublished QuizStatus = "published"
	QuizCompleted QuizStatus = "completed"
)

// Quiz is a quiz as the rest of the client sees it. The wire sometimes
// carries the schedule under a misspelled key; normalize repairs that
// before this type is decoded, so Schedule is always authoritative here.
type Quiz struct {
	ID               string     `json:"_id"`
	Code             string     `json:"code"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           QuizStatus `json:"status"`
	Schedule         string     `json:"schedule"`
	QuestionsCount   int        `json:"questions_number"`
	Duration         int        `json:"duration"`
	ScorePerQuestion int        `json:"score_per_question"`
	Difficulty       string     `json:"difficulty"`
	Type             string     `json:"type"`
	Category         string     `json:"category,omitempty"`
	GroupID          string     `json:"group"`
	InstructorID     string     `json:"instructor"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
}

// GroupRef is the group summary embedded in student records.
type GroupRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// StudentRef is the student summary used in groups, rankings, and results.
type StudentRef struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	AvgScore  float64   `json:"avg_score,omitempty"`
	Group     *GroupRef `json:"group,omitempty"`
}

// GroupName returns the student's group name, empty when ungrouped.
func (s StudentRef) GroupName() string {
	if s.Group == nil {
		return ""
	}
	return s.Group.Name
}

// Group is a named set of students.
type Group struct {
	ID       string       `json:"_id"`
	Name     string       `json:"name"`
	Students []StudentRef `json:"students"`
}

// AnswerKey is one of the four multiple-choice options.
type AnswerKey string

const (
	AnswerA AnswerKey = "A"
	AnswerB AnswerKey = "B"
	AnswerC AnswerKey = "C"
	AnswerD AnswerKey = "D"
)

// Options holds the four choice texts of a question.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// ByKey returns the option text for a key.
func (o Options) ByKey(k AnswerKey) string {
	switch k {
	case AnswerA:
		return o.A
	case AnswerB:
		return o.B
	case AnswerC:
		return o.C
	case AnswerD:
		return o.D
	}
	return ""
}

// Question is a quiz question. Answer is empty on the without-answers
// endpoint used during a live take.
type Question struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Options     Options   `json:"options"`
	Answer      AnswerKey `json:"answer,omitempty"`
	Difficulty  string    `json:"difficulty"`
	Type        string    `json:"type"`
}

// Submission is one participant's result for a quiz.
type Submission struct {
	ID          string     `json:"_id"`
	Participant StudentRef `json:"participant"`
	Score       float64    `json:"score"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  time.Time  `json:"finished_at"`
}

// QuizResult pairs a quiz with its submissions.
type QuizResult struct {
	Quiz         Quiz         `json:"quiz"`
	Participants []Submission `json:"participants"`
}
