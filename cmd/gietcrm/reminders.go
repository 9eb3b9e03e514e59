package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	crm "github.com/carlosyadil/giettenerife-crm"
)

func newAgendaCmd() *cobra.Command {
	var pendingOnly bool
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "List reminders, soonest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, _, err := setup(ctx)
			if err != nil {
				return err
			}
			reminders := store.ListReminders(ctx)
			shown := 0
			for _, r := range reminders {
				if pendingOnly && r.Completed {
					continue
				}
				mark := " "
				if r.Completed {
					mark = "x"
				}
				fmt.Printf("[%s] %s  %s  %s (client=%s)\n", mark, r.ID, r.Date.Format("2006-01-02"), r.Title, r.ClientID)
				shown++
			}
			if shown == 0 {
				fmt.Println("Agenda is empty.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only reminders not yet completed")
	return cmd
}

func newAddReminderCmd() *cobra.Command {
	var clientID, title, date string
	cmd := &cobra.Command{
		Use:   "add-reminder",
		Short: "Schedule a reminder for a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, actor, err := setup(ctx)
			if err != nil {
				return err
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			err = store.CreateReminder(ctx, actor, crm.CreateReminderRequest{
				ClientID: clientID,
				Title:    title,
				Date:     d,
			})
			if err != nil {
				return err
			}
			fmt.Println("Reminder scheduled.")
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "Client id (required)")
	_ = cmd.MarkFlagRequired("client")
	cmd.Flags().StringVar(&title, "title", "", "Reminder title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().StringVar(&date, "date", "", "Reminder date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newToggleReminderCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "toggle-reminder",
		Short: "Flip a reminder between pending and completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, actor, err := setup(ctx)
			if err != nil {
				return err
			}
			if err := store.ToggleReminder(ctx, actor, id); err != nil {
				return err
			}
			r, err := store.GetReminder(ctx, id)
			if err != nil {
				return err
			}
			if r.Completed {
				fmt.Println("Reminder marked completed.")
			} else {
				fmt.Println("Reminder marked pending.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Reminder id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newDeleteReminderCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete-reminder",
		Short: "Delete a reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, _, err := setup(ctx)
			if err != nil {
				return err
			}
			if err := store.DeleteReminder(ctx, id); err != nil {
				return err
			}
			fmt.Println("Reminder deleted.")
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Reminder id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
