package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nvalenti/fitweek/internal/models"
)

// seedUser describes one demo account with its weekly plan.
type seedUser struct {
	username string
	password string
	goal     string
	tasks    []models.Task
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

var seedUsers = []seedUser{
	{
		username: "ada",
		password: "password",
		goal:     "strength",
		tasks: []models.Task{
			{Name: "squats", Description: "Back squats", Reps: 5, Sets: intp(5), Weight: floatp(80)},
			{Name: "deadlift", Description: "Conventional", Reps: 5, Sets: intp(3), Weight: floatp(100)},
		},
	},
	{
		username: "grace",
		password: "password",
		goal:     "endurance",
		tasks: []models.Task{
			{Name: "5k run", Description: "Easy pace", Reps: 1},
			{Name: "plank", Description: "Hold 60s", Reps: 3},
		},
	},
}

// Seed inserts demo users with goals, tasks, and a post each.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	app, err := r.connect(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	created := []string{}

	for _, seed := range seedUsers {
		user, err := app.auth.Register(seed.username, seed.password)
		if err != nil {
			r.logger.Warn("skipping user", "username", seed.username, "error", err)
			continue
		}

		if err := app.tracking.SetGoal(user.ID(), seed.goal); err != nil {
			return fmt.Errorf("failed to set goal for %s: %w", seed.username, err)
		}

		for _, task := range seed.tasks {
			if _, err := app.tracking.CreateTask(user.ID(), task.Name, task.Description, task.Reps, task.Sets, task.Weight); err != nil {
				return fmt.Errorf("failed to create task for %s: %w", seed.username, err)
			}
		}

		if _, err := app.posts.Create(user.ID(), fmt.Sprintf("%s joined fitweek!", seed.username), ""); err != nil {
			return fmt.Errorf("failed to create post for %s: %w", seed.username, err)
		}

		created = append(created, seed.username)
		r.logger.Info("seeded user", "username", seed.username, "tasks", len(seed.tasks))
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"created": created}, true)
	}

	return r.writePlain("seeded %d users\n", len(created))
}
