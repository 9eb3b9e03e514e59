package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	crm "github.com/carlosyadil/giettenerife-crm"
)

func newListClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-clients",
		Short: "List all clients, ordered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, _, err := setup(ctx)
			if err != nil {
				return err
			}
			clients := store.ListClients(ctx)
			if len(clients) == 0 {
				fmt.Println("No clients.")
				return nil
			}
			for _, c := range clients {
				fmt.Printf("%s  %-30s %-20s %s\n", c.ID, c.Name, c.City, c.Phone)
			}
			return nil
		},
	}
}

func newGetClientCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "get-client",
		Short: "Show one client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, _, err := setup(ctx)
			if err != nil {
				return err
			}
			c, err := store.GetClient(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("Name:    %s\n", c.Name)
			fmt.Printf("Contact: %s\n", c.ContactPerson)
			fmt.Printf("Phone:   %s\n", c.Phone)
			fmt.Printf("Email:   %s\n", c.Email)
			fmt.Printf("Address: %s, %s\n", c.Address, c.City)
			if c.Notes != "" {
				fmt.Printf("Notes:   %s\n", c.Notes)
			}

			visits := store.ListVisitsByClient(ctx, c.ID)
			fmt.Printf("Visits:  %d\n", len(visits))
			for _, v := range visits {
				fmt.Printf("  %s  %-15s %s\n", v.Date.Format("2006-01-02"), v.Type, v.Result)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Client id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAddClientCmd() *cobra.Command {
	var req crm.CreateClientRequest
	cmd := &cobra.Command{
		Use:   "add-client",
		Short: "Create a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, actor, err := setup(ctx)
			if err != nil {
				return err
			}
			if err := store.CreateClient(ctx, actor, req); err != nil {
				return err
			}
			fmt.Printf("Client %q created.\n", req.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Workshop name (required)")
	cmd.Flags().StringVar(&req.ContactPerson, "contact", "", "Contact person")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&req.City, "city", "", "City")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Free-form notes")
	return cmd
}

func newUpdateClientCmd() *cobra.Command {
	var id string
	var name, contact, phone, email, address, city, notes string
	cmd := &cobra.Command{
		Use:   "update-client",
		Short: "Update a client's fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, actor, err := setup(ctx)
			if err != nil {
				return err
			}
			var req crm.UpdateClientRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("contact") {
				req.ContactPerson = &contact
			}
			if cmd.Flags().Changed("phone") {
				req.Phone = &phone
			}
			if cmd.Flags().Changed("email") {
				req.Email = &email
			}
			if cmd.Flags().Changed("address") {
				req.Address = &address
			}
			if cmd.Flags().Changed("city") {
				req.City = &city
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			if err := store.UpdateClient(ctx, actor, id, req); err != nil {
				return err
			}
			fmt.Println("Client updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Client id")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&name, "name", "", "Workshop name")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact person")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&city, "city", "", "City")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newDeleteClientCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete-client",
		Short: "Delete a client and, via the backend, its visits and reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, _, err := setup(ctx)
			if err != nil {
				return err
			}
			if err := store.DeleteClient(ctx, id); err != nil {
				return err
			}
			fmt.Println("Client deleted.")
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Client id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
