package cmd

import (
	"context"
	"fmt"

	"actividad-clase/api-service/logging"
	"actividad-clase/api-service/models"

	"github.com/spf13/cobra"
)

func newSeedCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample people, projects and tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx, f)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if err := seed(ctx, a); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sample data created")
			return nil
		},
	}
}

func ptr[T any](v T) *T { return &v }

func seed(ctx context.Context, a *app) error {
	people := []models.PersonPatch{
		{Name: ptr("Ana Torres"), Email: ptr("ana@example.com"), Role: ptr("developer")},
		{Name: ptr("Luis Gómez"), Email: ptr("luis@example.com"), Role: ptr("designer")},
	}
	for _, p := range people {
		if _, err := a.services.People.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed people: %w", err)
		}
	}

	project, err := a.services.Projects.Create(ctx, models.ProjectPatch{
		Name:        ptr("Sitio web"),
		Description: ptr("Rediseño del sitio institucional"),
	})
	if err != nil {
		return fmt.Errorf("failed to seed projects: %w", err)
	}

	tasks := []models.TaskPatch{
		{Title: ptr("Maquetar portada"), Description: ptr("HTML y CSS"), ProjectID: ptr(project.ID)},
		{Title: ptr("Publicar"), Description: ptr("Subir al servidor"), ProjectID: ptr(project.ID), Status: ptr(models.StatusInProgress)},
	}
	for _, t := range tasks {
		if _, err := a.services.Tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("failed to seed tasks: %w", err)
		}
	}

	logging.Logger.Infof("Event ID: SEED_DONE, Description: Seeded %d people, 1 project and %d tasks", len(people), len(tasks))
	return nil
}
