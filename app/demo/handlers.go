package demo

import (
	"net/http"
	"strconv"

	kyrin "github.com/kyrinjs/Kyrin"
	"github.com/kyrinjs/Kyrin/core/database"
	"github.com/kyrinjs/Kyrin/core/handler"
	"github.com/kyrinjs/Kyrin/core/response"
)

type taskInput struct {
	Title string `json:"title"`
}

func registerRoutes(web *kyrin.App, db *database.Client) {
	web.Get("/health", func(ctx *handler.Context) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	web.Get("/tasks", func(ctx *handler.Context) (any, error) {
		rows, err := db.Query(`SELECT id, title, done FROM tasks ORDER BY id`)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []database.Row{}
		}
		return rows, nil
	})

	web.Post("/tasks", func(ctx *handler.Context) (any, error) {
		var in taskInput
		if err := ctx.BindJSON(&in); err != nil {
			return response.StringWithStatus("invalid payload", http.StatusBadRequest), nil
		}
		if in.Title == "" {
			return response.StringWithStatus("title is required", http.StatusBadRequest), nil
		}

		res, err := db.Exec(`INSERT INTO tasks (title) VALUES (?)`, in.Title)
		if err != nil {
			return nil, err
		}
		return response.JSONWithStatus(map[string]any{
			"id":    res.LastInsertID,
			"title": in.Title,
			"done":  false,
		}, http.StatusCreated), nil
	})

	web.Get("/tasks/:id", func(ctx *handler.Context) (any, error) {
		row, err := db.QueryOne(`SELECT id, title, done FROM tasks WHERE id = ?`, ctx.Param("id"))
		if err != nil {
			return nil, err
		}
		if row == nil {
			return response.StringWithStatus("task not found", http.StatusNotFound), nil
		}
		return row, nil
	})

	web.Put("/tasks/:id/done", func(ctx *handler.Context) (any, error) {
		id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
		if err != nil {
			return response.StringWithStatus("invalid task id", http.StatusBadRequest), nil
		}

		// read back inside one transaction, so the response reflects exactly
		// the row that was updated
		result, err := db.Transaction(func(tx *database.Tx) (any, error) {
			res, err := tx.Exec(`UPDATE tasks SET done = 1 WHERE id = ?`, id)
			if err != nil {
				return nil, err
			}
			if res.RowsAffected == 0 {
				return nil, nil
			}
			return tx.QueryOne(`SELECT id, title, done FROM tasks WHERE id = ?`, id)
		})
		if err != nil {
			return nil, err
		}
		if result == nil {
			return response.StringWithStatus("task not found", http.StatusNotFound), nil
		}
		return result, nil
	})

	web.Delete("/tasks/:id", func(ctx *handler.Context) (any, error) {
		res, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, ctx.Param("id"))
		if err != nil {
			return nil, err
		}
		if res.RowsAffected == 0 {
			return response.StringWithStatus("task not found", http.StatusNotFound), nil
		}
		return nil, nil
	})
}
