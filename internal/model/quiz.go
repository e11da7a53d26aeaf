// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// QuizAnswerCount is the number of answers every quiz must carry before it
// can be published. Enforced at validation time, not by the schema.
const QuizAnswerCount = 4

// Question length bounds for the create validation group.
const (
	QuizQuestionMinLen = 3
	QuizQuestionMaxLen = 255
)

// Quiz is a single question attached to an article. The answers are owned
// by the quiz and removed with it.
type Quiz struct {
	ID        int64        `json:"id"`
	Question  string       `json:"question"`
	Status    Status       `json:"status"`
	ArticleID int64        `json:"article_id"`
	Answers   []Answer     `json:"answers,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt sql.NullTime `json:"updated_at,omitempty"`
}

// Answer is one of the four choices of a quiz. It refers back to its quiz
// by ID only.
type Answer struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	IsCorrect bool   `json:"is_correct"`
	QuizID    int64  `json:"quiz_id"`
}

// ValidateCreate checks the quiz against the strict "create" validation
// group: question length, known status, and exactly four answers. Returns
// a map of field name to error message, empty when the quiz is valid.
func (q *Quiz) ValidateCreate() map[string]string {
	errs := make(map[string]string)

	if q.Question == "" {
		errs["question"] = "Question is required"
	} else if len(q.Question) < QuizQuestionMinLen || len(q.Question) > QuizQuestionMaxLen {
		errs["question"] = "Question must be between 3 and 255 characters"
	}

	if !q.Status.Valid() {
		errs["status"] = "Invalid status"
	}

	if q.ArticleID == 0 {
		errs["article"] = "Article is required"
	}

	if len(q.Answers) != QuizAnswerCount {
		errs["answers"] = "A quiz must have exactly 4 answers"
	} else {
		for _, a := range q.Answers {
			if a.Content == "" {
				errs["answers"] = "Answers must not be empty"
				break
			}
		}
	}

	return errs
}

// ValidateEdit checks the looser edit validation group: the answer-count
// constraint is not enforced so partially reworked quizzes can be saved.
func (q *Quiz) ValidateEdit() map[string]string {
	errs := make(map[string]string)

	if q.Question == "" {
		errs["question"] = "Question is required"
	} else if len(q.Question) < QuizQuestionMinLen || len(q.Question) > QuizQuestionMaxLen {
		errs["question"] = "Question must be between 3 and 255 characters"
	}

	if !q.Status.Valid() {
		errs["status"] = "Invalid status"
	}

	return errs
}
