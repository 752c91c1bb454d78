package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/model"
)

func TestIncomingUsesHistoricalPath(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":[],"success":true}`))
	}, &fakeCreds{token: "t"})

	_, err := NewQuizService(c).Incoming(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/quiz/incomming", gotPath)
}

func TestIncomingRepairsScheduleDrift(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"_id":"a","title":"Drifted","schadule":"2023-12-01T10:00:00Z"},
			{"_id":"b","title":"Clean","schedule":"2023-12-02T10:00:00Z"}
		],"success":true}`))
	}, &fakeCreds{token: "t"})

	quizzes, err := NewQuizService(c).Incoming(context.Background())
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "2023-12-01T10:00:00Z", quizzes[0].Schedule)
	assert.Equal(t, "2023-12-02T10:00:00Z", quizzes[1].Schedule)
}

func TestQuizListNonArrayYieldsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// data is null: some server builds do this for empty lists.
		w.Write([]byte(`{"data":null,"success":true}`))
	}, &fakeCreds{token: "t"})

	quizzes, err := NewQuizService(c).Completed(context.Background(), model.RoleStudent)
	require.NoError(t, err)
	assert.NotNil(t, quizzes)
	assert.Empty(t, quizzes)
}

func TestCreateValidatesBeforeIO(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, &fakeCreds{token: "t"})

	_, err := NewQuizService(c).Create(context.Background(), model.QuizPayload{})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ValidationError, appErr.Type)
	assert.False(t, called, "an invalid payload must never hit the wire")
}

func TestCreateSendsMisspelledScheduleKey(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, jsonDecode(r, &body))
		w.Write([]byte(`{"data":{"_id":"new","title":"T","schadule":"s"},"success":true}`))
	}, &fakeCreds{token: "t"})

	payload := model.QuizPayload{
		Title:            "T",
		GroupID:          "g1",
		QuestionsCount:   5,
		Difficulty:       "easy",
		Type:             "FE",
		Schedule:         "2023-12-01T10:00:00Z",
		Duration:         10,
		ScorePerQuestion: 1,
	}

	quiz, err := NewQuizService(c).Create(context.Background(), payload)
	require.NoError(t, err)

	// The server still expects the historical key on writes.
	assert.Equal(t, "2023-12-01T10:00:00Z", body["schadule"])
	_, hasCorrect := body["schedule"]
	assert.False(t, hasCorrect, "the corrected key must not be sent")

	// And the response comes back repaired.
	assert.Equal(t, "s", quiz.Schedule)
}

func TestJoinValidatesCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, &fakeCreds{token: "t"})

	_, err := NewQuizService(c).Join(context.Background(), model.JoinRequest{})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ValidationError, appErr.Type)
}

func TestSubmitRequiresAnswers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, &fakeCreds{token: "t"})
	svc := NewQuizService(c)

	_, err := svc.Submit(context.Background(), "q1", model.SubmitRequest{})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ValidationError, appErr.Type)

	_, err = svc.Submit(context.Background(), "q1", model.SubmitRequest{
		Answers: []model.Answer{{QuestionID: "x", Answer: "E"}},
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ValidationError, appErr.Type, "answer keys outside A-D are rejected")
}

func TestSubmitScore(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":{"score":8.5},"success":true}`))
	}, &fakeCreds{token: "t"})

	res, err := NewQuizService(c).Submit(context.Background(), "q1", model.SubmitRequest{
		Answers: []model.Answer{{QuestionID: "x", Answer: model.AnswerA}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/quiz/submit/q1", gotPath)
	assert.Equal(t, 8.5, res.Score)
}

func TestQuestionsWithoutAnswersPath(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":[{"_id":"qq","title":"2+2?","options":{"A":"3","B":"4"}}],"success":true}`))
	}, &fakeCreds{token: "t"})

	qs, err := NewQuizService(c).Questions(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, "/quiz/without-answers/q1", gotPath)
	require.Len(t, qs, 1)
	assert.Empty(t, qs[0].Answer, "a live take must never see the answer key")
}

func jsonDecode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
