package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	crm "github.com/carlosyadil/giettenerife-crm"
)

func newLogVisitCmd() *cobra.Command {
	var clientID, date, visitType, result, notes, followUp, followUpTitle string
	cmd := &cobra.Command{
		Use:   "log-visit",
		Short: "Record a visit, optionally scheduling a follow-up reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, actor, err := setup(ctx)
			if err != nil {
				return err
			}

			req := crm.CreateVisitRequest{
				ClientID: clientID,
				Type:     crm.VisitType(visitType),
				Result:   crm.VisitResult(result),
				Notes:    notes,
			}
			if date != "" {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				req.Date = d
			}
			if followUp != "" {
				d, err := parseDate(followUp)
				if err != nil {
					return err
				}
				req.FollowUpDate = &d
			}

			if err := store.CreateVisit(ctx, actor, req); err != nil {
				return err
			}
			fmt.Println("Visit recorded.")

			// Second, independent call of the two-call protocol. There
			// is no transaction: if this insert fails the visit above
			// stays, and the representative creates the reminder by
			// hand.
			if req.FollowUpDate != nil {
				title := followUpTitle
				if title == "" {
					title = "Seguimiento de visita"
				}
				err := store.CreateReminder(ctx, actor, crm.CreateReminderRequest{
					ClientID: clientID,
					Title:    title,
					Date:     *req.FollowUpDate,
				})
				if err != nil {
					log.Warn().Err(err).Msg("visit was recorded, but the follow-up reminder could not be created")
					return fmt.Errorf("follow-up reminder not created: %w", err)
				}
				fmt.Printf("Follow-up reminder scheduled for %s.\n", req.FollowUpDate.Format("2006-01-02"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "Client id (required)")
	_ = cmd.MarkFlagRequired("client")
	cmd.Flags().StringVar(&date, "date", "", "Visit date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&visitType, "type", string(crm.VisitFollowUp), `Visit type: "Primera Visita", "Seguimiento", "Postventa" or "Cierre"`)
	cmd.Flags().StringVar(&result, "result", string(crm.ResultPending), `Result: "Interesado", "No Interesado", "Pendiente" or "Vendido"`)
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&followUp, "follow-up", "", "Follow-up date, YYYY-MM-DD; also schedules a reminder")
	cmd.Flags().StringVar(&followUpTitle, "follow-up-title", "", "Title for the follow-up reminder")
	return cmd
}

func newListVisitsCmd() *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "list-visits",
		Short: "List visits, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, _, err := setup(ctx)
			if err != nil {
				return err
			}
			var visits []crm.Visit
			if clientID != "" {
				visits = store.ListVisitsByClient(ctx, clientID)
			} else {
				visits = store.ListVisits(ctx)
			}
			if len(visits) == 0 {
				fmt.Println("No visits.")
				return nil
			}
			for _, v := range visits {
				line := fmt.Sprintf("%s  %s  %-15s %-13s client=%s", v.ID, v.Date.Format("2006-01-02"), v.Type, v.Result, v.ClientID)
				if v.FollowUpDate != nil {
					line += "  follow-up=" + v.FollowUpDate.Format("2006-01-02")
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "Only this client's visits")
	return cmd
}

func newDeleteVisitCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete-visit",
		Short: "Delete a visit record",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, _, err := setup(ctx)
			if err != nil {
				return err
			}
			if err := store.DeleteVisit(ctx, id); err != nil {
				return err
			}
			fmt.Println("Visit deleted.")
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Visit id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
