// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

const quizColumns = `id, article_id, question, status, created_at, updated_at`

func scanQuiz(s scanner) (model.Quiz, error) {
	var z model.Quiz
	err := s.Scan(&z.ID, &z.ArticleID, &z.Question, &z.Status, &z.CreatedAt, &z.UpdatedAt)
	return z, err
}

// CreateQuizParams holds a quiz together with its answer set. Callers
// validate the answer count before reaching the store.
type CreateQuizParams struct {
	ArticleID int64
	Question  string
	Status    model.Status
	Answers   []model.Answer
	CreatedAt time.Time
}

// CreateQuiz inserts a quiz and its answers in one transaction so a quiz
// never exists without its answer set.
func (q *Queries) CreateQuiz(ctx context.Context, db *sql.DB, arg CreateQuizParams) (model.Quiz, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.Quiz{}, err
	}
	defer tx.Rollback()

	qtx := q.WithTx(tx)
	res, err := tx.ExecContext(ctx, `
		INSERT INTO quiz (article_id, question, status, created_at)
		VALUES (?, ?, ?, ?)`,
		arg.ArticleID, arg.Question, int(arg.Status), arg.CreatedAt)
	if err != nil {
		return model.Quiz{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Quiz{}, err
	}

	if err := qtx.insertAnswers(ctx, id, arg.Answers); err != nil {
		return model.Quiz{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Quiz{}, err
	}
	return q.GetQuizByID(ctx, id)
}

func (q *Queries) insertAnswers(ctx context.Context, quizID int64, answers []model.Answer) error {
	for _, a := range answers {
		_, err := q.db.ExecContext(ctx,
			`INSERT INTO answer (quiz_id, content, is_correct) VALUES (?, ?, ?)`,
			quizID, a.Content, a.IsCorrect)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetQuizByID fetches a quiz with its answers loaded.
func (q *Queries) GetQuizByID(ctx context.Context, id int64) (model.Quiz, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+quizColumns+` FROM quiz WHERE id = ?`, id)
	z, err := scanQuiz(row)
	if err != nil {
		return model.Quiz{}, err
	}
	z.Answers, err = q.ListAnswersByQuiz(ctx, z.ID)
	return z, err
}

// ListQuizzes returns every quiz, newest first. Answers are not loaded,
// list pages only show the question row.
func (q *Queries) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+quizColumns+` FROM quiz ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Quiz
	for rows.Next() {
		z, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

// ListQuizzesByArticle returns an article's quizzes with answers, oldest
// first so the backoffice shows them in authoring order.
func (q *Queries) ListQuizzesByArticle(ctx context.Context, articleID int64) ([]model.Quiz, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+quizColumns+` FROM quiz WHERE article_id = ? ORDER BY created_at ASC, id ASC`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Quiz
	for rows.Next() {
		z, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Answers, err = q.ListAnswersByQuiz(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListAnswersByQuiz returns the answers of one quiz in insertion order.
func (q *Queries) ListAnswersByQuiz(ctx context.Context, quizID int64) ([]model.Answer, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, quiz_id, content, is_correct FROM answer WHERE quiz_id = ? ORDER BY id ASC`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.QuizID, &a.Content, &a.IsCorrect); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateQuizParams holds the mutable fields of a quiz.
type UpdateQuizParams struct {
	ID        int64
	Question  string
	Status    model.Status
	UpdatedAt time.Time
}

// UpdateQuiz updates the question and status, touching updated_at. Answers
// are replaced separately.
func (q *Queries) UpdateQuiz(ctx context.Context, arg UpdateQuizParams) (model.Quiz, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE quiz SET question = ?, status = ?, updated_at = ? WHERE id = ?`,
		arg.Question, int(arg.Status), arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Quiz{}, err
	}
	return q.GetQuizByID(ctx, arg.ID)
}

// ReplaceAnswers swaps the full answer set of a quiz in one transaction.
func (q *Queries) ReplaceAnswers(ctx context.Context, db *sql.DB, quizID int64, answers []model.Answer) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := q.WithTx(tx)
	if _, err := tx.ExecContext(ctx, `DELETE FROM answer WHERE quiz_id = ?`, quizID); err != nil {
		return err
	}
	if err := qtx.insertAnswers(ctx, quizID, answers); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteQuiz removes a quiz; its answers go with it via ON DELETE CASCADE.
func (q *Queries) DeleteQuiz(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM quiz WHERE id = ?`, id)
	return err
}
